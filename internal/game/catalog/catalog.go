package catalog

import (
	"errors"
	"fmt"

	"github.com/firestone-manager/firestone/internal/game/rarity"
)

// Tables is the raw content of a catalog before indexing.
//
// Rarities are listed lowest first; their sequence defines the rarity Order.
type Tables struct {
	Rarities        []*Rarity
	Specializations []*Specialization
	Characters      []*Character
	Items           map[Category][]*ItemDef
	UpgradeEffects  map[Category][]float64
	WarMachines     []string
}

// Catalog indexes Tables for read-only lookup by id. A Catalog is never
// mutated after Build and is safe for concurrent use.
type Catalog struct {
	order       rarity.Order
	rarities    map[rarity.ID]*Rarity
	rarityList  []*Rarity
	specs       map[string]*Specialization
	specList    []*Specialization
	characters  map[string]*Character
	charList    []*Character
	items       map[Category]map[string]*ItemDef
	itemList    map[Category][]*ItemDef
	upgrades    map[Category][]float64
	warMachines []string
	wmSet       map[string]bool
}

// Build validates t and indexes it.
//
// Precondition: t.Rarities must be non-empty.
// Postcondition: Returns a Catalog or an error describing every violation found.
func Build(t Tables) (*Catalog, error) {
	var errs []error

	c := &Catalog{
		rarities:   make(map[rarity.ID]*Rarity, len(t.Rarities)),
		specs:      make(map[string]*Specialization, len(t.Specializations)),
		characters: make(map[string]*Character, len(t.Characters)),
		items:      make(map[Category]map[string]*ItemDef, len(Categories)),
		itemList:   make(map[Category][]*ItemDef, len(Categories)),
		upgrades:   make(map[Category][]float64, len(Categories)),
		wmSet:      make(map[string]bool, len(t.WarMachines)),
	}

	ids := make([]rarity.ID, 0, len(t.Rarities))
	for _, r := range t.Rarities {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("rarity %q: %w", r.ID, err))
			continue
		}
		ids = append(ids, r.ID)
		c.rarities[r.ID] = r
		c.rarityList = append(c.rarityList, r)
	}
	order, err := rarity.NewOrder(ids...)
	if err != nil {
		errs = append(errs, err)
	}
	c.order = order

	for _, s := range t.Specializations {
		if s.ID == "" {
			errs = append(errs, errors.New("specialization with empty id"))
			continue
		}
		if _, dup := c.specs[s.ID]; dup {
			errs = append(errs, fmt.Errorf("specialization %q already registered", s.ID))
			continue
		}
		c.specs[s.ID] = s
		c.specList = append(c.specList, s)
	}

	for _, ch := range t.Characters {
		if ch.ID == "" {
			errs = append(errs, errors.New("character with empty id"))
			continue
		}
		if _, dup := c.characters[ch.ID]; dup {
			errs = append(errs, fmt.Errorf("character %q already registered", ch.ID))
			continue
		}
		if _, ok := c.specs[ch.Spec]; !ok {
			errs = append(errs, fmt.Errorf("character %q references unknown specialization %q", ch.ID, ch.Spec))
		}
		c.characters[ch.ID] = ch
		c.charList = append(c.charList, ch)
	}

	for _, cat := range Categories {
		byID := make(map[string]*ItemDef, len(t.Items[cat]))
		for _, d := range t.Items[cat] {
			d.Category = cat
			if err := d.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s item %q: %w", cat, d.ID, err))
				continue
			}
			if _, dup := byID[d.ID]; dup {
				errs = append(errs, fmt.Errorf("%s item %q already registered", cat, d.ID))
				continue
			}
			byID[d.ID] = d
			c.itemList[cat] = append(c.itemList[cat], d)
		}
		c.items[cat] = byID
		c.upgrades[cat] = append([]float64(nil), t.UpgradeEffects[cat]...)
	}

	for _, wm := range t.WarMachines {
		if wm == "" || wm == "none" {
			errs = append(errs, fmt.Errorf("war machine id %q is not allowed", wm))
			continue
		}
		if c.wmSet[wm] {
			errs = append(errs, fmt.Errorf("war machine %q already registered", wm))
			continue
		}
		c.wmSet[wm] = true
		c.warMachines = append(c.warMachines, wm)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}
	return c, nil
}

// RarityOrder returns the progression order of the catalog's rarities.
func (c *Catalog) RarityOrder() rarity.Order { return c.order }

// Rarity returns the rarity record for id.
//
// Postcondition: ok is false for unknown ids and for rarity.None.
func (c *Catalog) Rarity(id rarity.ID) (*Rarity, bool) {
	r, ok := c.rarities[id]
	return r, ok
}

// Rarities returns every rarity, lowest first.
func (c *Catalog) Rarities() []*Rarity {
	return append([]*Rarity(nil), c.rarityList...)
}

// MaxLevel returns the maximum level of rarity id; 0 for None or unknown ids.
func (c *Catalog) MaxLevel(id rarity.ID) int {
	if r, ok := c.rarities[id]; ok {
		return r.MaxLevel
	}
	return 0
}

// Specialization returns the specialization for id.
func (c *Catalog) Specialization(id string) (*Specialization, bool) {
	s, ok := c.specs[id]
	return s, ok
}

// Specializations returns every specialization in file order.
func (c *Catalog) Specializations() []*Specialization {
	return append([]*Specialization(nil), c.specList...)
}

// Character returns the character definition for id.
func (c *Catalog) Character(id string) (*Character, bool) {
	ch, ok := c.characters[id]
	return ch, ok
}

// Characters returns every character in file order.
func (c *Catalog) Characters() []*Character {
	return append([]*Character(nil), c.charList...)
}

// Item returns the definition of item id within category cat.
func (c *Catalog) Item(cat Category, id string) (*ItemDef, bool) {
	d, ok := c.items[cat][id]
	return d, ok
}

// Items returns the definitions of category cat in file order.
func (c *Catalog) Items(cat Category) []*ItemDef {
	return append([]*ItemDef(nil), c.itemList[cat]...)
}

// UpgradeEffect returns the flat bonus granted at level for category cat.
//
// Postcondition: returns 0 when level is outside the table.
func (c *Catalog) UpgradeEffect(cat Category, level int) float64 {
	table := c.upgrades[cat]
	if level < 0 || level >= len(table) {
		return 0
	}
	return table[level]
}

// WarMachines returns every known war machine id in file order.
func (c *Catalog) WarMachines() []string {
	return append([]string(nil), c.warMachines...)
}

// HasWarMachine reports whether id is a known war machine.
func (c *Catalog) HasWarMachine(id string) bool {
	return c.wmSet[id]
}
