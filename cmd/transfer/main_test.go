package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/storage"
	"github.com/firestone-manager/firestone/internal/transfer"
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

type failingKV struct{ storage.KV }

var errBroken = errors.New("broken store")

func (failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBroken }

func memoryConfig() config.Config {
	return config.Config{Store: config.StoreConfig{Driver: config.DriverMemory, Key: config.DefaultStoreKey}}
}

const storedHeroes = `[{"id":"talia","unlocked":true,"warMachine":"aegis","gear":[],"jewel":[],"soulstone":[]}]`

func TestRun_ExportThenImport(t *testing.T) {
	ctx := context.Background()
	src := storage.NewMemoryKV()
	require.NoError(t, src.Set(ctx, config.DefaultStoreKey, []byte(storedHeroes)))
	useStore(t, src)

	var out bytes.Buffer
	require.NoError(t, run(memoryConfig(), "export", "-", nil, &out, zaptest.NewLogger(t)))
	blob := strings.TrimSpace(out.String())
	env, err := transfer.Decode(blob)
	require.NoError(t, err)
	require.NotNil(t, env.Heroes)
	assert.Equal(t, storedHeroes, *env.Heroes)

	dst := storage.NewMemoryKV()
	counted := useStore(t, dst)
	require.NoError(t, run(memoryConfig(), "import", "-", strings.NewReader(blob+"\n"), &out, zaptest.NewLogger(t)))
	raw, ok, err := dst.Get(ctx, config.DefaultStoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, storedHeroes, string(raw))
	assert.Equal(t, 1, counted.closed)
}

func TestRun_Clear(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, config.DefaultStoreKey, []byte(storedHeroes)))
	useStore(t, kv)

	require.NoError(t, run(memoryConfig(), "clear", "-", nil, &bytes.Buffer{}, zaptest.NewLogger(t)))
	_, ok, err := kv.Get(ctx, config.DefaultStoreKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRun_ClosesStoreOnError(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		counted := useStore(t, failingKV{KV: storage.NewMemoryKV()})
		err := run(memoryConfig(), "export", "-", nil, &bytes.Buffer{}, zaptest.NewLogger(t))
		assert.ErrorIs(t, err, errBroken)
		assert.Equal(t, 1, counted.closed)
	})
	t.Run("invalid blob", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		counted := useStore(t, kv)
		err := run(memoryConfig(), "import", "-", strings.NewReader("not base64!"), &bytes.Buffer{}, zaptest.NewLogger(t))
		assert.ErrorIs(t, err, transfer.ErrInvalidEnvelope)
		assert.Equal(t, 1, counted.closed)
		_, ok, err := kv.Get(context.Background(), config.DefaultStoreKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
