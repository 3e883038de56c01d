package hero

import (
	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/rarity"
)

// Repair returns a copy of h whose item lists hold exactly one item per
// catalog definition, in catalog order.
//
// Items already present are kept; missing ones are filled with defaults and
// items the catalog no longer defines are dropped. Blank rarities become
// none, negative levels become 0, and a nil seal list becomes empty. Levels
// above the rarity's maximum are left alone: that invariant is enforced when
// the rarity changes.
//
// Precondition: h must not be nil.
func Repair(h *Hero, cat Catalog) *Hero {
	out := &Hero{
		ID:         h.ID,
		Unlocked:   h.Unlocked,
		WarMachine: h.WarMachine,
	}
	if out.WarMachine == "" {
		out.WarMachine = NoWarMachine
	}
	for _, c := range catalog.Categories {
		existing := make(map[string]Item, len(h.Items(c)))
		for _, it := range h.Items(c) {
			if _, dup := existing[it.ID]; !dup {
				existing[it.ID] = it
			}
		}
		defs := cat.Items(c)
		items := make([]Item, 0, len(defs))
		for _, d := range defs {
			it, ok := existing[d.ID]
			if !ok {
				items = append(items, defaultItem(d.ID))
				continue
			}
			items = append(items, sanitize(it.clone()))
		}
		out.setItems(c, items)
	}
	return out
}

func sanitize(it Item) Item {
	if it.Rarity == "" {
		it.Rarity = rarity.None
	}
	if it.Level < 0 {
		it.Level = 0
	}
	if it.UnusedSeals == nil {
		it.UnusedSeals = []rarity.ID{}
	}
	return it
}
