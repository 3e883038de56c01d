// Package main prints the war machine crew table: every unlocked hero with
// the damage, health and armor its jewels give to a war machine.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/game/crew"
	"github.com/firestone-manager/firestone/internal/game/stats"
	"github.com/firestone-manager/firestone/internal/i18n"
	"github.com/firestone-manager/firestone/internal/observability"
	"github.com/firestone-manager/firestone/internal/storage/backend"
)

type jsonRow struct {
	ID         string `json:"id"`
	Spec       string `json:"spec"`
	WarMachine string `json:"warMachine"`
	stats.Stats
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (empty = defaults and FIRESTONE_* env)")
	sortKey := flag.String("sort", string(crew.ByCharacterName), "column to sort by")
	direction := flag.String("dir", string(crew.Asc), "sort direction: asc or desc")
	locale := flag.String("locale", "", "display locale (empty = locale.default)")
	asJSON := flag.Bool("json", false, "print rows as JSON instead of a table")
	flag.Parse()

	key, err := crew.ParseSortKey(*sortKey)
	if err != nil {
		log.Fatalf("%v (valid keys: %v)", err, crew.SortKeys)
	}
	dir, err := crew.ParseDirection(*direction)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "crew")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if *locale == "" {
		*locale = cfg.Locale.Default
	}
	opts := options{key: key, dir: dir, locale: *locale, asJSON: *asJSON}
	n, err := run(cfg, opts, os.Stdout, logger)
	if err != nil {
		logger.Fatal("crew failed", zap.Error(err))
	}

	logger.Debug("crew listed",
		zap.Int("rows", n),
		zap.String("sort", string(key)),
		zap.String("dir", string(dir)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

type options struct {
	key    crew.SortKey
	dir    crew.Direction
	locale string
	asJSON bool
}

var openRepository = backend.OpenRepository

// run writes the sorted crew table, or JSON rows, to out and returns the
// number of rows written.
func run(cfg config.Config, opts options, out io.Writer, logger *zap.Logger) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cat, err := backend.LoadCatalog(cfg.Catalog)
	if err != nil {
		return 0, fmt.Errorf("loading catalog: %w", err)
	}
	repo, kv, err := openRepository(ctx, cfg, cat, logger)
	if err != nil {
		return 0, err
	}
	defer kv.Close()

	heroes, err := repo.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading heroes: %w", err)
	}
	rows := crew.Build(heroes, cat, stats.NewLoggedEngine(cat, logger))
	crew.Sort(rows, opts.key, opts.dir)

	if opts.asJSON {
		jsonRows := make([]jsonRow, len(rows))
		for i, r := range rows {
			jsonRows[i] = jsonRow{ID: r.Hero.ID, Spec: r.Spec, WarMachine: r.WarMachine, Stats: r.Stats}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonRows); err != nil {
			return 0, fmt.Errorf("writing rows: %w", err)
		}
		return len(rows), nil
	}

	bundle, err := i18n.Load()
	if err != nil {
		return 0, fmt.Errorf("loading locales: %w", err)
	}
	if err := crew.WriteTable(out, rows, bundle.Localizer(opts.locale)); err != nil {
		return 0, fmt.Errorf("writing table: %w", err)
	}
	return len(rows), nil
}
