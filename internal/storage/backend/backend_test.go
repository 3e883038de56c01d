package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/storage"
	"github.com/firestone-manager/firestone/internal/storage/backend"
	"github.com/firestone-manager/firestone/internal/storage/sqlite"
)

func TestOpen_Memory(t *testing.T) {
	kv, err := backend.Open(context.Background(), config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryKV{}, kv)
	assert.NoError(t, kv.Close())
}

func TestOpen_SQLite(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "firestone.db"),
	}}
	kv, err := backend.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	assert.IsType(t, &sqlite.Store{}, kv)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := backend.Open(context.Background(), config.Config{Store: config.StoreConfig{Driver: "etcd"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	cat, err := backend.LoadCatalog(config.CatalogConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Characters())

	_, err = backend.LoadCatalog(config.CatalogConfig{Dir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestOpenRepository_Memory(t *testing.T) {
	ctx := context.Background()
	cat, err := backend.LoadCatalog(config.CatalogConfig{})
	require.NoError(t, err)
	cfg := config.Config{Store: config.StoreConfig{Driver: config.DriverMemory, Key: config.DefaultStoreKey}}

	repo, kv, err := backend.OpenRepository(ctx, cfg, cat, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	_, err = repo.Save(ctx, &hero.Hero{ID: "talia", Unlocked: true})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultStoreKey, repo.Store().Key())
	_, ok, err := kv.Get(ctx, config.DefaultStoreKey)
	require.NoError(t, err)
	assert.True(t, ok)
}
