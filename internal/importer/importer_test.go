package importer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/importer"
	"github.com/firestone-manager/firestone/internal/storage"
)

type stubSource struct {
	batch *importer.Batch
	err   error
}

func (s stubSource) Load(string) (*importer.Batch, error) { return s.batch, s.err }

type failingRepo struct{}

func (failingRepo) Merge(context.Context, []*hero.Hero) (storage.MergeResult, error) {
	return storage.MergeResult{}, errors.New("disk full")
}

func newRepo(t interface {
	require.TestingT
	Helper()
}) *storage.Repository {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return storage.NewRepository(storage.NewHeroStore(storage.NewMemoryKV(), "k"), cat, zap.NewNop())
}

func TestImporter_Run_MergesAndReports(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	_, err := repo.Save(ctx, &hero.Hero{ID: "talia"})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	src := stubSource{batch: &importer.Batch{
		Heroes:   []*hero.Hero{{ID: "talia", Unlocked: true}, {ID: "leo"}},
		Warnings: []string{"invalid war machine index for leo: 99, defaulting to none"},
	}}
	rep, err := importer.New(src, repo, zap.New(core)).Run(ctx, "dump.json", false)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Heroes)
	assert.Equal(t, 1, rep.Unlocked)
	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 1, rep.Updated)
	assert.Len(t, rep.Warnings, 1)
	assert.Equal(t, 1, logs.FilterMessage("legacy data").Len())

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Unlocked)
}

func TestImporter_Run_DryRunLeavesStore(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	src := stubSource{batch: &importer.Batch{Heroes: []*hero.Hero{{ID: "leo", Unlocked: true}}}}

	rep, err := importer.New(src, repo, zap.NewNop()).Run(ctx, "dump.json", true)
	require.NoError(t, err)
	assert.True(t, rep.DryRun)
	assert.Zero(t, rep.Created)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImporter_Run_Errors(t *testing.T) {
	ctx := context.Background()
	_, err := importer.New(stubSource{err: errors.New("no file")}, newRepo(t), zap.NewNop()).Run(ctx, "x", false)
	assert.ErrorContains(t, err, "loading source")

	src := stubSource{batch: &importer.Batch{Heroes: []*hero.Hero{{ID: "leo"}}}}
	_, err = importer.New(src, failingRepo{}, zap.NewNop()).Run(ctx, "x", false)
	assert.ErrorContains(t, err, "disk full")
}

// Property: Created + Updated always equals the number of imported heroes.
func TestImporter_Run_CountsAddUp(t *testing.T) {
	ids := []string{"talia", "boris", "leo", "ayaan", "astrid"}
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		repo := newRepo(rt)
		pre := rapid.SliceOfDistinct(rapid.SampledFrom(ids), func(s string) string { return s }).Draw(rt, "pre")
		for _, id := range pre {
			_, err := repo.Save(ctx, &hero.Hero{ID: id})
			require.NoError(rt, err)
		}
		in := rapid.SliceOfDistinct(rapid.SampledFrom(ids), func(s string) string { return s }).Draw(rt, "in")
		var heroes []*hero.Hero
		for _, id := range in {
			heroes = append(heroes, &hero.Hero{ID: id})
		}

		rep, err := importer.New(stubSource{batch: &importer.Batch{Heroes: heroes}}, repo, zap.NewNop()).Run(ctx, "x", false)
		require.NoError(rt, err)
		assert.Equal(rt, len(in), rep.Created+rep.Updated)
	})
}
