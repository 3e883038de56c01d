// Package main runs the PostgreSQL store migrations. The SQLite store applies
// its own embedded migrations when opened.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/firestone-manager/firestone/internal/config"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	dir := flag.String("migrations", "migrations", "path to the PostgreSQL migrations directory")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.Store.Driver != config.DriverPostgres {
		fmt.Fprintf(os.Stdout, "store driver is %q; nothing to migrate\n", cfg.Store.Driver)
		return
	}

	if *direction != "up" && *direction != "down" {
		log.Fatalf("invalid direction %q: must be 'up' or 'down'", *direction)
	}

	version, dirty, err := run("file://"+*dir, cfg.Database.DSN(), *direction, *steps)
	elapsed := time.Since(start)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		fmt.Fprintf(os.Stdout, "no changes (version=%d dirty=%v) [%s]\n", version, dirty, elapsed)
	case err != nil:
		log.Fatalf("migration failed: %v", err)
	default:
		fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n", *direction, version, dirty, elapsed)
	}
}

// run migrates the database at dsn with the files at sourceURL. steps of 0
// migrates all the way in direction. ErrNoChange is returned unwrapped along
// with the current version.
func run(sourceURL, dsn, direction string, steps int) (uint, bool, error) {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return 0, false, fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	switch {
	case direction == "up" && steps > 0:
		err = m.Steps(steps)
	case direction == "up":
		err = m.Up()
	case steps > 0:
		err = m.Steps(-steps)
	default:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, err
	}
	version, dirty, _ := m.Version()
	return version, dirty, err
}
