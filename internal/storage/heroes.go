package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firestone-manager/firestone/internal/game/hero"
)

// HeroStore reads and writes the hero array held at one KV key.
type HeroStore struct {
	kv  KV
	key string
}

// NewHeroStore creates a HeroStore over kv using key.
//
// Precondition: kv must be non-nil and key non-empty.
func NewHeroStore(kv KV, key string) *HeroStore {
	return &HeroStore{kv: kv, key: key}
}

// Key returns the storage key.
func (s *HeroStore) Key() string { return s.key }

// Load returns every stored hero.
//
// Postcondition: Returns an empty slice when nothing is stored, or ErrCorruptData
// when the stored value is not a JSON hero array.
func (s *HeroStore) Load(ctx context.Context) ([]*hero.Hero, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.key, err)
	}
	if !ok {
		return []*hero.Hero{}, nil
	}
	return DecodeHeroes(raw)
}

// DecodeHeroes parses a JSON hero array. A JSON null decodes to an empty slice.
func DecodeHeroes(raw []byte) ([]*hero.Hero, error) {
	var heroes []*hero.Hero
	if err := json.Unmarshal(raw, &heroes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	out := heroes[:0]
	for _, h := range heroes {
		if h != nil {
			out = append(out, h)
		}
	}
	if out == nil {
		out = []*hero.Hero{}
	}
	return out, nil
}

// Save replaces the stored array with heroes.
func (s *HeroStore) Save(ctx context.Context, heroes []*hero.Hero) error {
	if heroes == nil {
		heroes = []*hero.Hero{}
	}
	raw, err := json.Marshal(heroes)
	if err != nil {
		return fmt.Errorf("encoding heroes: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}
	return nil
}

// FindByID returns the stored hero with id.
func (s *HeroStore) FindByID(ctx context.Context, id string) (*hero.Hero, bool, error) {
	heroes, err := s.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, h := range heroes {
		if h.ID == id {
			return h, true, nil
		}
	}
	return nil, false, nil
}

// SaveHero replaces the stored hero with the same id, or appends h when none exists.
//
// Postcondition: created reports whether h was appended.
func (s *HeroStore) SaveHero(ctx context.Context, h *hero.Hero) (created bool, err error) {
	heroes, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	created = true
	for i, existing := range heroes {
		if existing.ID == h.ID {
			heroes[i] = h
			created = false
			break
		}
	}
	if created {
		heroes = append(heroes, h)
	}
	return created, s.Save(ctx, heroes)
}

// Clear removes the stored array.
func (s *HeroStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("deleting %s: %w", s.key, err)
	}
	return nil
}

// Raw returns the stored value verbatim.
func (s *HeroStore) Raw(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", s.key, err)
	}
	return string(raw), ok, nil
}

// SetRaw stores raw verbatim after checking it decodes as a hero array.
func (s *HeroStore) SetRaw(ctx context.Context, raw string) error {
	if _, err := DecodeHeroes([]byte(raw)); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, []byte(raw)); err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}
	return nil
}
