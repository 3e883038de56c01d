// Package crew builds the war machine crew table: one row of derived stats
// per unlocked hero.
package crew

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/game/stats"
)

// ErrInvalidSortKey is returned by ParseSortKey and ParseDirection for unknown input.
var ErrInvalidSortKey = errors.New("invalid sort key")

// Engine computes a hero's stats.
type Engine interface {
	Compute(h *hero.Hero) stats.Stats
}

// Catalog is the reference data the crew table reads.
type Catalog interface {
	Character(id string) (*catalog.Character, bool)
	HasWarMachine(id string) bool
}

// Row is one line of the crew table.
type Row struct {
	Hero *hero.Hero
	// Character is nil when the catalog does not define the hero.
	Character *catalog.Character
	// Spec is the character's specialization id, empty when Character is nil.
	Spec string
	// WarMachine is a known war machine id or hero.NoWarMachine; empty when
	// the stored id is no longer in the catalog.
	WarMachine string
	Stats      stats.Stats
}

// Build returns one row per unlocked hero, in input order.
func Build(heroes []*hero.Hero, cat Catalog, eng Engine) []Row {
	rows := make([]Row, 0, len(heroes))
	for _, h := range heroes {
		if h == nil || !h.Unlocked {
			continue
		}
		row := Row{Hero: h, Stats: eng.Compute(h)}
		if ch, ok := cat.Character(h.ID); ok {
			row.Character = ch
			row.Spec = ch.Spec
		}
		if h.WarMachine == hero.NoWarMachine || cat.HasWarMachine(h.WarMachine) {
			row.WarMachine = h.WarMachine
		}
		rows = append(rows, row)
	}
	return rows
}

// SortKey names a crew table column.
type SortKey string

// Sort keys.
const (
	ByCharacterName         SortKey = "characterName"
	BySpec                  SortKey = "spec"
	ByWarMachineName        SortKey = "warMachineName"
	ByDmg                   SortKey = "dmg"
	ByPotentialDmg          SortKey = "potentialDmg"
	ByHealth                SortKey = "health"
	ByPotentialHealth       SortKey = "potentialHealth"
	ByResist                SortKey = "resist"
	ByPotentialResist       SortKey = "potentialResist"
	ByHealthResist          SortKey = "healthResist"
	ByPotentialHealthResist SortKey = "potentialHealthResist"
)

// SortKeys lists every column in display order.
var SortKeys = []SortKey{
	ByCharacterName, BySpec, ByWarMachineName,
	ByDmg, ByPotentialDmg,
	ByHealth, ByPotentialHealth,
	ByResist, ByPotentialResist,
	ByHealthResist, ByPotentialHealthResist,
}

// ParseSortKey matches s against the sort keys, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// Direction is the sort direction.
type Direction string

// Directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc", ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	}
	return "", fmt.Errorf("%w: direction %q", ErrInvalidSortKey, s)
}

func numeric(key SortKey, s stats.Stats) float64 {
	switch key {
	case ByDmg:
		return s.Dmg
	case ByPotentialDmg:
		return s.PotentialDmg
	case ByHealth:
		return s.Health
	case ByPotentialHealth:
		return s.PotentialHealth
	case ByResist:
		return s.Resist
	case ByPotentialResist:
		return s.PotentialResist
	case ByHealthResist:
		return s.HealthResist
	case ByPotentialHealthResist:
		return s.PotentialHealthResist
	}
	return 0
}

func compare(key SortKey, a, b Row) int {
	switch key {
	case ByCharacterName:
		return cmp.Compare(a.Hero.ID, b.Hero.ID)
	case BySpec:
		return cmp.Compare(a.Spec, b.Spec)
	case ByWarMachineName:
		return cmp.Compare(a.WarMachine, b.WarMachine)
	}
	return cmp.Compare(numeric(key, a.Stats), numeric(key, b.Stats))
}

// Sort orders rows in place by key and dir. Ties fall back to hero id
// ascending so the result is deterministic.
func Sort(rows []Row, key SortKey, dir Direction) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		c := compare(key, a, b)
		if dir == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Hero.ID, b.Hero.ID)
	})
}
