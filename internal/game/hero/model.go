// Package hero defines the player-owned hero record and the editing rules
// applied to its equipment.
package hero

import (
	"errors"
	"slices"

	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/rarity"
)

// NoWarMachine is the war machine id of a hero with no vehicle assigned.
const NoWarMachine = "none"

var (
	// ErrUnknownRarity is returned when an edit names a rarity the catalog does not define.
	ErrUnknownRarity = errors.New("unknown rarity")
	// ErrUnknownWarMachine is returned when an edit names a war machine the catalog does not define.
	ErrUnknownWarMachine = errors.New("unknown war machine")
	// ErrUnknownItem is returned when an edit names an item the hero does not carry.
	ErrUnknownItem = errors.New("unknown item")
	// ErrSealNotApplicable is returned when a toggled seal does not rank above the item's rarity.
	ErrSealNotApplicable = errors.New("seal not applicable")
)

// Catalog is the reference data the hero package reads.
type Catalog interface {
	Items(cat catalog.Category) []*catalog.ItemDef
	Rarity(id rarity.ID) (*catalog.Rarity, bool)
	Rarities() []*catalog.Rarity
	RarityOrder() rarity.Order
	HasWarMachine(id string) bool
}

// Item is one equipment slot of a hero.
//
// UnusedSeals holds the seal rarities the player has attained for this slot.
// The stat engine walks them to find the potential ceiling rarity.
type Item struct {
	ID          string      `json:"id"`
	Rarity      rarity.ID   `json:"rarity"`
	Level       int         `json:"level"`
	UnusedSeals []rarity.ID `json:"unusedSeals"`
}

// Hero is the persisted state of one character.
type Hero struct {
	ID         string `json:"id"`
	Unlocked   bool   `json:"unlocked"`
	WarMachine string `json:"warMachine"`
	Gear       []Item `json:"gear"`
	Jewel      []Item `json:"jewel"`
	Soulstone  []Item `json:"soulstone"`
}

// Items returns the item list of category cat, or nil for an unknown category.
func (h *Hero) Items(cat catalog.Category) []Item {
	switch cat {
	case catalog.CategoryGear:
		return h.Gear
	case catalog.CategoryJewel:
		return h.Jewel
	case catalog.CategorySoulstone:
		return h.Soulstone
	}
	return nil
}

func (h *Hero) setItems(cat catalog.Category, items []Item) {
	switch cat {
	case catalog.CategoryGear:
		h.Gear = items
	case catalog.CategoryJewel:
		h.Jewel = items
	case catalog.CategorySoulstone:
		h.Soulstone = items
	}
}

// Item returns a pointer to the item id in category cat so callers can edit it in place.
func (h *Hero) Item(cat catalog.Category, id string) (*Item, bool) {
	items := h.Items(cat)
	for i := range items {
		if items[i].ID == id {
			return &items[i], true
		}
	}
	return nil, false
}

// HasEquippedItem reports whether any item in any category has a rarity other than none.
func (h *Hero) HasEquippedItem() bool {
	for _, cat := range catalog.Categories {
		for _, it := range h.Items(cat) {
			if it.Rarity != rarity.None && it.Rarity != "" {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of h.
func (h *Hero) Clone() *Hero {
	if h == nil {
		return nil
	}
	out := *h
	for _, cat := range catalog.Categories {
		src := h.Items(cat)
		if src == nil {
			continue
		}
		dst := make([]Item, len(src))
		for i, it := range src {
			dst[i] = it.clone()
		}
		out.setItems(cat, dst)
	}
	return &out
}

func (it Item) clone() Item {
	it.UnusedSeals = slices.Clone(it.UnusedSeals)
	return it
}

// HasSeal reports whether r is among the item's attained seals.
func (it *Item) HasSeal(r rarity.ID) bool {
	return slices.Contains(it.UnusedSeals, r)
}

func defaultItem(id string) Item {
	return Item{ID: id, Rarity: rarity.None, Level: 0, UnusedSeals: []rarity.ID{}}
}

// NewDefault returns a locked hero carrying one empty item per catalog definition.
//
// Postcondition: every item has rarity none, level 0 and no seals; WarMachine is NoWarMachine.
func NewDefault(id string, cat Catalog) *Hero {
	h := &Hero{ID: id, WarMachine: NoWarMachine}
	for _, c := range catalog.Categories {
		defs := cat.Items(c)
		items := make([]Item, 0, len(defs))
		for _, d := range defs {
			items = append(items, defaultItem(d.ID))
		}
		h.setItems(c, items)
	}
	return h
}
