// Package redis provides a Redis key-value backend using go-redis v9.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/config"
)

// Store is a storage.KV over plain Redis string keys.
type Store struct {
	client *goredis.Client
	logger *zap.Logger
}

// Open connects to the Redis server described by cfg and pings it.
//
// Precondition: cfg.URL must be a redis:// or rediss:// URL.
// Postcondition: Returns a connected Store or a non-nil error.
func Open(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*Store, error) {
	opt, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	opt.MinIdleConns = 1
	opt.ConnMaxIdleTime = 30 * time.Minute

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	logger.Info("redis connection established",
		zap.Int("pool_size", opt.PoolSize),
		zap.Int("database", opt.DB),
	)
	return &Store{client: client, logger: logger}, nil
}

// Health pings the server.
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get implements storage.KV.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("GET %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements storage.KV. Values never expire.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("SET %s: %w", key, err)
	}
	return nil
}

// Delete implements storage.KV.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("DEL %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	s.logger.Debug("closing redis connection")
	return s.client.Close()
}
