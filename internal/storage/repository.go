package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/hero"
)

// Catalog is the reference data the Repository needs to repair heroes.
type Catalog interface {
	hero.Catalog
	Character(id string) (*catalog.Character, bool)
}

// Repository is the catalog-aware hero port: every hero it returns or writes
// has been passed through hero.Repair.
type Repository struct {
	store  *HeroStore
	cat    Catalog
	logger *zap.Logger
}

// NewRepository creates a Repository.
//
// Precondition: store, cat and logger must be non-nil.
func NewRepository(store *HeroStore, cat Catalog, logger *zap.Logger) *Repository {
	return &Repository{store: store, cat: cat, logger: logger}
}

// Store returns the underlying HeroStore.
func (r *Repository) Store() *HeroStore { return r.store }

// All returns every stored hero, repaired, in stored order.
func (r *Repository) All(ctx context.Context) ([]*hero.Hero, error) {
	heroes, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*hero.Hero, len(heroes))
	for i, h := range heroes {
		out[i] = hero.Repair(h, r.cat)
	}
	return out, nil
}

// Hero returns the stored hero with id, repaired. When nothing is stored for a
// character the catalog defines, a fresh default hero is returned unsaved.
//
// Postcondition: Returns ErrUnknownHero when id is neither stored nor a catalog character.
func (r *Repository) Hero(ctx context.Context, id string) (*hero.Hero, error) {
	h, ok, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		return hero.Repair(h, r.cat), nil
	}
	if _, known := r.cat.Character(id); !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHero, id)
	}
	r.logger.Info("creating default hero", zap.String("hero", id))
	return hero.NewDefault(id, r.cat), nil
}

// Save repairs h and upserts it by id.
//
// Postcondition: Returns the repaired hero that was written.
func (r *Repository) Save(ctx context.Context, h *hero.Hero) (*hero.Hero, error) {
	repaired := hero.Repair(h, r.cat)
	created, err := r.store.SaveHero(ctx, repaired)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("hero saved", zap.String("hero", repaired.ID), zap.Bool("created", created))
	return repaired, nil
}

// MergeResult counts the outcome of Merge.
type MergeResult struct {
	Created int
	Updated int
}

// Merge repairs every hero in heroes and upserts them in one write.
func (r *Repository) Merge(ctx context.Context, heroes []*hero.Hero) (MergeResult, error) {
	stored, err := r.store.Load(ctx)
	if err != nil {
		return MergeResult{}, err
	}
	index := make(map[string]int, len(stored))
	for i, h := range stored {
		index[h.ID] = i
	}
	var res MergeResult
	for _, h := range heroes {
		repaired := hero.Repair(h, r.cat)
		if i, ok := index[repaired.ID]; ok {
			stored[i] = repaired
			res.Updated++
			continue
		}
		index[repaired.ID] = len(stored)
		stored = append(stored, repaired)
		res.Created++
	}
	if err := r.store.Save(ctx, stored); err != nil {
		return MergeResult{}, err
	}
	return res, nil
}

// Clear removes every stored hero.
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return err
	}
	r.logger.Info("hero data cleared", zap.String("key", r.store.Key()))
	return nil
}
