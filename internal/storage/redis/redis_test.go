package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/storage"
	"github.com/firestone-manager/firestone/internal/storage/redis"
	"github.com/firestone-manager/firestone/internal/testutil"
)

var _ storage.KV = (*redis.Store)(nil)

func TestOpen_InvalidURL(t *testing.T) {
	_, err := redis.Open(context.Background(), config.RedisConfig{URL: "http://nope"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestStore_GetSetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	rc := testutil.NewRedisContainer(t)
	ctx := context.Background()
	s, err := redis.Open(ctx, rc.Config, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Health(ctx))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_HeroStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	rc := testutil.NewRedisContainer(t)
	ctx := context.Background()
	s, err := redis.Open(ctx, rc.Config, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	store := storage.NewHeroStore(s, config.DefaultStoreKey)
	require.NoError(t, store.Save(ctx, []*hero.Hero{{ID: "leo", Unlocked: true}}))
	heroes, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, heroes, 1)
	assert.True(t, heroes[0].Unlocked)
}
