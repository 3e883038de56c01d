package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// KV stores values in the kv table. It implements storage.KV.
type KV struct {
	pool *Pool
}

// NewKV creates a KV backed by pool.
//
// Precondition: pool must be a valid, open Pool.
func NewKV(pool *Pool) *KV {
	return &KV{pool: pool}
}

// Get returns the value stored at key.
//
// Postcondition: ok is false when no row exists for key.
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := k.pool.DB().QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("selecting %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set upserts value at key.
func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := k.pool.DB().Exec(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (k *KV) Delete(ctx context.Context, key string) error {
	if _, err := k.pool.DB().Exec(ctx, `DELETE FROM kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying pool.
func (k *KV) Close() error {
	k.pool.Close()
	return nil
}
