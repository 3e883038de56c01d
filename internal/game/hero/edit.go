package hero

import (
	"fmt"
	"slices"

	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/rarity"
)

// SetRarity changes the item's rarity.
//
// Precondition: r must be rarity.None or a rarity defined by cat.
// Postcondition: Level is clamped to the new rarity's MaxLevel and only seals
// strictly above the new rarity are kept. Setting none resets the level to 0
// and clears every seal.
func (it *Item) SetRarity(r rarity.ID, cat Catalog) error {
	if r == rarity.None {
		it.Rarity = rarity.None
		it.Level = 0
		it.UnusedSeals = []rarity.ID{}
		return nil
	}
	def, ok := cat.Rarity(r)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRarity, r)
	}
	it.Rarity = r
	it.Level = min(it.Level, def.MaxLevel)
	order := cat.RarityOrder()
	kept := make([]rarity.ID, 0, len(it.UnusedSeals))
	for _, s := range it.UnusedSeals {
		if order.Above(s, r) {
			kept = append(kept, s)
		}
	}
	it.UnusedSeals = kept
	return nil
}

// SetLevel sets the item's level clamped to [0, MaxLevel] of its current rarity.
//
// Postcondition: an item of rarity none always stays at level 0.
func (it *Item) SetLevel(level int, cat Catalog) {
	maxLevel := 0
	if def, ok := cat.Rarity(it.Rarity); ok {
		maxLevel = def.MaxLevel
	}
	it.Level = max(0, min(level, maxLevel))
}

// ToggleSeal adds r to the attained seals, or removes it when already present.
func (it *Item) ToggleSeal(r rarity.ID) {
	if i := slices.Index(it.UnusedSeals, r); i >= 0 {
		it.UnusedSeals = slices.Delete(it.UnusedSeals, i, i+1)
		return
	}
	it.UnusedSeals = append(it.UnusedSeals, r)
}

// ApplicableSeals returns the seal-granting rarities strictly above the item's
// rarity, lowest first. An item of rarity none, or of a rarity missing from the
// order, has no applicable seals.
func ApplicableSeals(it Item, cat Catalog) []rarity.ID {
	order := cat.RarityOrder()
	if !order.Contains(it.Rarity) {
		return nil
	}
	var out []rarity.ID
	for _, r := range cat.Rarities() {
		if r.HasSeal && order.Above(r.ID, it.Rarity) {
			out = append(out, r.ID)
		}
	}
	return out
}

// SetWarMachine assigns a war machine to the hero.
//
// Precondition: id must be NoWarMachine or a war machine defined by cat.
func (h *Hero) SetWarMachine(id string, cat Catalog) error {
	if id != NoWarMachine && !cat.HasWarMachine(id) {
		return fmt.Errorf("%w: %q", ErrUnknownWarMachine, id)
	}
	h.WarMachine = id
	return nil
}

// Edit is a set of changes to one hero. Nil fields are left untouched.
type Edit struct {
	Unlocked   *bool
	WarMachine *string

	// Category and Item select the item the fields below apply to.
	Category catalog.Category
	Item     string
	Rarity   *rarity.ID
	Level    *int
	// ToggleSeals are toggled in order after Rarity and Level are applied.
	ToggleSeals []rarity.ID
}

// Changes reports whether e sets any field.
func (e Edit) Changes() bool {
	return e.Unlocked != nil || e.WarMachine != nil || e.touchesItem()
}

func (e Edit) touchesItem() bool {
	return e.Rarity != nil || e.Level != nil || len(e.ToggleSeals) > 0
}

// Apply applies e to h. Either every change is applied or none is.
//
// Precondition: h must have been repaired against cat.
// Postcondition: on error h is unchanged.
func (h *Hero) Apply(e Edit, cat Catalog) error {
	next := h.Clone()
	if e.Unlocked != nil {
		next.Unlocked = *e.Unlocked
	}
	if e.WarMachine != nil {
		if err := next.SetWarMachine(*e.WarMachine, cat); err != nil {
			return err
		}
	}
	if e.touchesItem() {
		it, ok := next.Item(e.Category, e.Item)
		if !ok {
			return fmt.Errorf("%w: %s %q", ErrUnknownItem, e.Category, e.Item)
		}
		if e.Rarity != nil {
			if err := it.SetRarity(*e.Rarity, cat); err != nil {
				return err
			}
		}
		if e.Level != nil {
			it.SetLevel(*e.Level, cat)
		}
		for _, s := range e.ToggleSeals {
			if !slices.Contains(ApplicableSeals(*it, cat), s) {
				return fmt.Errorf("%w: %q on %s item", ErrSealNotApplicable, s, it.Rarity)
			}
			it.ToggleSeal(s)
		}
	}
	*h = *next
	return nil
}
