// Package postgres provides a PostgreSQL key-value backend using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firestone-manager/firestone/internal/config"
)

// ErrSchemaMissing is returned when the kv table has not been migrated.
var ErrSchemaMissing = errors.New("kv table missing; run cmd/migrate")

// Pool owns the pgx connections behind the postgres hero store.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool creates a new PostgreSQL connection pool from the given configuration.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a connected Pool or a non-nil error. The pool is ready
// for queries upon successful return.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Ready pings the server and checks that the kv table exists, both within
// timeout.
//
// Postcondition: Returns ErrSchemaMissing when the server answers but the
// migrations have not been applied.
func (p *Pool) Ready(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	var exists bool
	if err := p.pool.QueryRow(ctx, `SELECT to_regclass('kv') IS NOT NULL`).Scan(&exists); err != nil {
		return fmt.Errorf("checking schema: %w", err)
	}
	if !exists {
		return ErrSchemaMissing
	}
	return nil
}

// Close releases all pool resources.
//
// Postcondition: The pool is no longer usable after calling Close.
func (p *Pool) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// KV returns a key-value store over this pool's kv table.
//
// Precondition: the kv table must exist (see cmd/migrate).
func (p *Pool) KV() *KV {
	return NewKV(p)
}
