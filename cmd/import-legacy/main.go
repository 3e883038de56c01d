// Package main imports a save dump from the first crew tracker into the
// hero store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/importer"
	"github.com/firestone-manager/firestone/internal/importer/legacy"
	"github.com/firestone-manager/firestone/internal/observability"
	"github.com/firestone-manager/firestone/internal/storage/backend"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (empty = defaults and FIRESTONE_* env)")
	source := flag.String("source", "", "path to the legacy JSON dump")
	dryRun := flag.Bool("dry-run", false, "convert and report without writing")
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "usage: import-legacy -source <file> [-config <file>] [-dry-run]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "import-legacy")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	rep, err := run(cfg, *source, *dryRun, logger)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
	fmt.Fprintf(os.Stdout, "heroes=%d unlocked=%d created=%d updated=%d warnings=%d dry_run=%v\n",
		rep.Heroes, rep.Unlocked, rep.Created, rep.Updated, len(rep.Warnings), rep.DryRun)
}

var openRepository = backend.OpenRepository

func run(cfg config.Config, source string, dryRun bool, logger *zap.Logger) (importer.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cat, err := backend.LoadCatalog(cfg.Catalog)
	if err != nil {
		return importer.Report{}, fmt.Errorf("loading catalog: %w", err)
	}
	repo, kv, err := openRepository(ctx, cfg, cat, logger)
	if err != nil {
		return importer.Report{}, err
	}
	defer kv.Close()

	return importer.New(legacy.NewSource(), repo, logger).Run(ctx, source, dryRun)
}
