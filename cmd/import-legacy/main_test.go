package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/storage"
)

type closeCountingKV struct {
	storage.KV
	closed int
}

func (k *closeCountingKV) Close() error {
	k.closed++
	return nil
}

func useStore(t *testing.T, kv storage.KV) *closeCountingKV {
	t.Helper()
	counted := &closeCountingKV{KV: kv}
	prev := openRepository
	openRepository = func(_ context.Context, cfg config.Config, cat storage.Catalog, logger *zap.Logger) (*storage.Repository, storage.KV, error) {
		return storage.NewRepository(storage.NewHeroStore(counted, cfg.Store.Key), cat, logger), counted, nil
	}
	t.Cleanup(func() { openRepository = prev })
	return counted
}

func memoryConfig() config.Config {
	return config.Config{Store: config.StoreConfig{Driver: config.DriverMemory, Key: config.DefaultStoreKey}}
}

func writeDump(t *testing.T, dump string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0644))
	return path
}

func TestRun_Merges(t *testing.T) {
	kv := storage.NewMemoryKV()
	counted := useStore(t, kv)
	path := writeDump(t, `{"talia-WM": 13, "talia-jewels-ankh-rarity": 3, "leo-WM": 99}`)

	rep, err := run(memoryConfig(), path, false, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Heroes)
	assert.Equal(t, 1, rep.Unlocked)
	assert.Equal(t, 2, rep.Created)
	assert.Len(t, rep.Warnings, 1)
	assert.Equal(t, 1, counted.closed)

	_, ok, err := kv.Get(context.Background(), config.DefaultStoreKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRun_DryRunLeavesStoreEmpty(t *testing.T) {
	kv := storage.NewMemoryKV()
	useStore(t, kv)
	path := writeDump(t, `{"talia-jewels-ankh-rarity": 3}`)

	rep, err := run(memoryConfig(), path, true, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, rep.DryRun)
	assert.Zero(t, rep.Created)

	_, ok, err := kv.Get(context.Background(), config.DefaultStoreKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRun_ClosesStoreOnError(t *testing.T) {
	counted := useStore(t, storage.NewMemoryKV())

	_, err := run(memoryConfig(), filepath.Join(t.TempDir(), "missing.json"), false, zaptest.NewLogger(t))
	assert.Error(t, err)
	assert.Equal(t, 1, counted.closed)
}
