// Package backend opens the storage.KV selected by configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/storage"
	"github.com/firestone-manager/firestone/internal/storage/postgres"
	"github.com/firestone-manager/firestone/internal/storage/redis"
	"github.com/firestone-manager/firestone/internal/storage/sqlite"
)

// Open returns the KV for cfg.Store.Driver. The caller owns the result and
// must Close it.
//
// Precondition: cfg must have passed Validate.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.KV, error) {
	logger = logger.With(zap.String("driver", cfg.Store.Driver))
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("store opened", zap.String("path", cfg.Store.Path))
		return s, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := pool.Ready(ctx, 5*time.Second); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Debug("store opened", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Name))
		return pool.KV(), nil
	case config.DriverRedis:
		s, err := redis.Open(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		logger.Warn("using in-memory store; data is discarded on exit")
		return storage.NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// LoadCatalog returns the catalog in cfg.Dir, or the embedded default when
// cfg.Dir is empty.
func LoadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Dir == "" {
		return catalog.Default()
	}
	return catalog.LoadDir(cfg.Dir)
}

// OpenRepository opens the configured KV and wires it with cat into a
// storage.Repository. The returned KV must be closed by the caller.
func OpenRepository(ctx context.Context, cfg config.Config, cat storage.Catalog, logger *zap.Logger) (*storage.Repository, storage.KV, error) {
	kv, err := Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	repo := storage.NewRepository(storage.NewHeroStore(kv, cfg.Store.Key), cat, logger)
	return repo, kv, nil
}
