// Package importer brings hero data from foreign formats into the hero store.
package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/storage"
)

// Repository is where imported heroes are merged.
type Repository interface {
	Merge(ctx context.Context, heroes []*hero.Hero) (storage.MergeResult, error)
}

// Report summarises one Run.
type Report struct {
	Heroes   int
	Unlocked int
	Created  int
	Updated  int
	Warnings []string
	DryRun   bool
}

// Importer orchestrates an import from a Source into a Repository.
type Importer struct {
	source Source
	repo   Repository
	logger *zap.Logger
}

// New constructs an Importer.
//
// Precondition: source, repo and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, repo Repository, logger *zap.Logger) *Importer {
	return &Importer{source: source, repo: repo, logger: logger}
}

// Run loads path through the source and merges the heroes into the
// repository, replacing stored heroes with the same id. With dryRun the
// repository is not touched.
//
// Postcondition: every conversion warning is logged and returned in the Report.
func (imp *Importer) Run(ctx context.Context, path string, dryRun bool) (Report, error) {
	start := time.Now()

	batch, err := imp.source.Load(path)
	if err != nil {
		return Report{}, fmt.Errorf("loading source: %w", err)
	}
	for _, w := range batch.Warnings {
		imp.logger.Warn("legacy data", zap.String("warning", w))
	}

	rep := Report{Heroes: len(batch.Heroes), Warnings: batch.Warnings, DryRun: dryRun}
	for _, h := range batch.Heroes {
		if h.Unlocked {
			rep.Unlocked++
		}
	}
	imp.logger.Info("source loaded",
		zap.String("path", path),
		zap.Int("heroes", rep.Heroes),
		zap.Int("unlocked", rep.Unlocked),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	if dryRun {
		return rep, nil
	}

	res, err := imp.repo.Merge(ctx, batch.Heroes)
	if err != nil {
		return Report{}, fmt.Errorf("merging heroes: %w", err)
	}
	rep.Created, rep.Updated = res.Created, res.Updated
	imp.logger.Info("import complete",
		zap.Int("created", rep.Created),
		zap.Int("updated", rep.Updated),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return rep, nil
}
