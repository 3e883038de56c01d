// Package main exports, imports and clears the stored hero data using the
// base64 blob format shared with the browser tracker.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/observability"
	"github.com/firestone-manager/firestone/internal/storage/backend"
	"github.com/firestone-manager/firestone/internal/transfer"
)

const usage = "usage: transfer [-config <file>] export | import [-in <file>] | clear -yes"

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (empty = defaults and FIRESTONE_* env)")
	in := flag.String("in", "-", "import source file; - reads stdin")
	yes := flag.Bool("yes", false, "confirm clear")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	action := flag.Arg(0)
	switch action {
	case "export", "import":
	case "clear":
		if !*yes {
			fmt.Fprintln(os.Stderr, "refusing to clear hero data without -yes")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown action %q\n%s\n", action, usage)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "transfer")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, action, *in, os.Stdin, os.Stdout, logger); err != nil {
		logger.Fatal("transfer failed", zap.String("action", action), zap.Error(err))
	}
	logger.Debug("transfer done", zap.String("action", action), zap.Duration("elapsed", time.Since(start)))
}

var openRepository = backend.OpenRepository

// run performs action against the configured store. Import reads from in
// when inPath is "-", export writes the blob to out.
//
// Precondition: action is export, import or clear; clear has been confirmed.
func run(cfg config.Config, action, inPath string, in io.Reader, out io.Writer, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cat, err := backend.LoadCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	repo, kv, err := openRepository(ctx, cfg, cat, logger)
	if err != nil {
		return err
	}
	defer kv.Close()
	store := repo.Store()

	switch action {
	case "export":
		blob, err := transfer.Export(ctx, store)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintln(out, blob)
	case "import":
		text, err := readInput(inPath, in)
		if err != nil {
			return fmt.Errorf("reading import: %w", err)
		}
		env, err := transfer.Import(ctx, store, text)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		if env.Heroes == nil {
			logger.Info("import carried no heroes; store cleared")
		} else {
			logger.Info("import complete", zap.Int("bytes", len(*env.Heroes)))
		}
	case "clear":
		if err := repo.Clear(ctx); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
