// Package main shows one hero and applies equipment edits to it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/firestone-manager/firestone/internal/config"
	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/game/rarity"
	"github.com/firestone-manager/firestone/internal/game/stats"
	"github.com/firestone-manager/firestone/internal/observability"
	"github.com/firestone-manager/firestone/internal/storage/backend"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (empty = defaults and FIRESTONE_* env)")
	id := flag.String("id", "", "hero id (required)")
	category := flag.String("category", string(catalog.CategoryJewel), "item category: gear, jewel or soulstone")
	item := flag.String("item", "", "item id to edit")
	rarityFlag := flag.String("rarity", "", "new item rarity")
	level := flag.Int("level", 0, "new item level")
	seals := flag.String("seal", "", "comma separated seals to toggle on the item")
	warMachine := flag.String("wm", "", "war machine id, or none")
	unlocked := flag.Bool("unlocked", false, "mark the hero unlocked or locked")
	flag.Parse()

	if *id == "" {
		flag.Usage()
		os.Exit(1)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var edit hero.Edit
	if set["unlocked"] {
		edit.Unlocked = unlocked
	}
	if set["wm"] {
		edit.WarMachine = warMachine
	}
	if set["rarity"] {
		r := rarity.ID(*rarityFlag)
		edit.Rarity = &r
	}
	if set["level"] {
		edit.Level = level
	}
	if *seals != "" {
		for _, s := range strings.Split(*seals, ",") {
			edit.ToggleSeals = append(edit.ToggleSeals, rarity.ID(strings.TrimSpace(s)))
		}
	}
	edit.Category = catalog.Category(*category)
	edit.Item = *item

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "hero")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, *id, edit, os.Stdout, logger); err != nil {
		logger.Fatal("hero failed", zap.String("hero", *id), zap.Error(err))
	}
	logger.Debug("hero shown", zap.String("hero", *id), zap.Bool("edited", edit.Changes()), zap.Duration("elapsed", time.Since(start)))
}

var openRepository = backend.OpenRepository

// run loads hero id, applies edit when it changes anything, saves the result
// and prints the hero to out. The store is closed before run returns.
func run(cfg config.Config, id string, edit hero.Edit, out io.Writer, logger *zap.Logger) error {
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

	h, err := repo.Hero(ctx, id)
	if err != nil {
		return fmt.Errorf("loading hero: %w", err)
	}
	if edit.Changes() {
		if err := h.Apply(edit, cat); err != nil {
			return fmt.Errorf("editing hero: %w", err)
		}
		if h, err = repo.Save(ctx, h); err != nil {
			return fmt.Errorf("saving hero: %w", err)
		}
	}

	printHero(out, h, stats.NewLoggedEngine(cat, logger).Evaluate(h), cat)
	return nil
}

func printHero(out io.Writer, h *hero.Hero, res stats.Result, cat *catalog.Catalog) {
	fmt.Fprintf(out, "%s unlocked=%v war_machine=%s\n", h.ID, h.Unlocked, h.WarMachine)
	for _, c := range catalog.Categories {
		fmt.Fprintf(out, "  %s\n", c)
		for _, it := range h.Items(c) {
			seals := make([]string, len(it.UnusedSeals))
			for i, s := range it.UnusedSeals {
				seals[i] = string(s)
			}
			fmt.Fprintf(out, "    %-10s %-10s lvl %2d/%-2d seals [%s]\n",
				it.ID, it.Rarity, it.Level, cat.MaxLevel(it.Rarity), strings.Join(seals, ","))
		}
	}
	s := res.Stats
	fmt.Fprintf(out, "  damage %.1f (%.1f)  health %.1f (%.1f)  armor %.1f (%.1f)\n",
		s.Dmg, s.PotentialDmg, s.Health, s.PotentialHealth, s.Resist, s.PotentialResist)
	for _, d := range res.Diagnostics {
		fmt.Fprintf(out, "  warning: %v\n", d)
	}
}
