package legacy

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/game/rarity"
)

// Convert turns dump entries into heroes. Problems with individual keys are
// reported as warnings and never abort the conversion.
//
// Postcondition: heroes appear in first-seen order and keep the id exactly as
// written in the key; a hero is unlocked iff at least one of its items has a
// rarity other than none.
func Convert(entries []Entry) ([]*hero.Hero, []string) {
	var (
		heroes   []*hero.Hero
		byID     = map[string]*hero.Hero{}
		warnings []string
	)
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for _, e := range entries {
		parts := strings.Split(e.Key, "-")
		if len(parts) < 2 {
			continue
		}
		id := parts[0]
		if id == "" {
			warnf("key %q has no hero id", e.Key)
			continue
		}
		h, ok := byID[id]
		if !ok {
			h = &hero.Hero{
				ID:         id,
				WarMachine: hero.NoWarMachine,
				Gear:       []hero.Item{},
				Jewel:      []hero.Item{},
				Soulstone:  []hero.Item{},
			}
			byID[id] = h
			heroes = append(heroes, h)
		}

		if parts[1] == warMachineMarker {
			idx, ok := toIndex(e.Value)
			if !ok || idx < 0 || idx >= len(WarMachineMap) {
				warnf("invalid war machine index for %s: %v, defaulting to none", id, e.Value)
				continue
			}
			h.WarMachine = WarMachineMap[idx]
			continue
		}

		if len(parts) != 4 {
			continue
		}
		category, itemType, property := parts[1], parts[2], parts[3]

		types, ok := ItemTypes[category]
		if !ok {
			warnf("unknown item category %s in key %s", category, e.Key)
			continue
		}
		if !slices.Contains(types, itemType) {
			warnf("invalid item type %s for category %s in key %s", itemType, category, e.Key)
			continue
		}

		items := itemsOf(h, category)
		i := slices.IndexFunc(*items, func(it hero.Item) bool { return it.ID == itemType })
		if i < 0 {
			*items = append(*items, hero.Item{ID: itemType, Rarity: rarity.None, UnusedSeals: []rarity.ID{}})
			i = len(*items) - 1
		}
		item := &(*items)[i]

		switch property {
		case propRarity:
			idx, ok := toIndex(e.Value)
			if !ok || idx < 0 || idx >= len(RarityMap) {
				warnf("invalid rarity index for %s-%s: %v, defaulting to none", id, itemType, e.Value)
				item.Rarity = rarity.None
				continue
			}
			item.Rarity = RarityMap[idx]
		case propLevel:
			lvl, ok := toIndex(e.Value)
			if !ok {
				warnf("invalid level for %s-%s: %v", id, itemType, e.Value)
				continue
			}
			item.Level = lvl
		default:
			warnf("unknown property %q for item %s in key %s", property, itemType, e.Key)
		}
	}

	for _, h := range heroes {
		h.Unlocked = anyRated(h.Gear) || anyRated(h.Jewel) || anyRated(h.Soulstone)
	}
	return heroes, warnings
}

func itemsOf(h *hero.Hero, category string) *[]hero.Item {
	switch category {
	case CategoryGears:
		return &h.Gear
	case CategoryJewels:
		return &h.Jewel
	default:
		return &h.Soulstone
	}
}

func anyRated(items []hero.Item) bool {
	return slices.ContainsFunc(items, func(it hero.Item) bool { return it.Rarity != rarity.None })
}

// toIndex accepts whole JSON numbers and numeric strings.
func toIndex(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
