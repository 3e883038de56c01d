// Package storage persists the hero array under a single key of a
// key-value backend.
package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrCorruptData is returned when the stored value cannot be decoded as a hero array.
	ErrCorruptData = errors.New("stored hero data is corrupt")
	// ErrUnknownHero is returned when a hero id is neither stored nor defined by the catalog.
	ErrUnknownHero = errors.New("unknown hero")
)

// KV is a minimal string key-value store.
type KV interface {
	// Get returns the value stored at key. ok is false when key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryKV is an in-process KV. The zero value is not usable; call NewMemoryKV.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get implements KV.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements KV.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements KV.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close implements KV.
func (m *MemoryKV) Close() error { return nil }
