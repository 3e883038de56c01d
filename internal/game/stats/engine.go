// Package stats derives a hero's war machine crew stats from its equipped jewels.
package stats

import (
	"fmt"
	"slices"

	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/game/rarity"
)

// Catalog is the read-only reference data the engine consults.
// Every lookup reports absence instead of failing.
type Catalog interface {
	Character(id string) (*catalog.Character, bool)
	Specialization(id string) (*catalog.Specialization, bool)
	Item(cat catalog.Category, id string) (*catalog.ItemDef, bool)
	Rarity(id rarity.ID) (*catalog.Rarity, bool)
	RarityOrder() rarity.Order
	UpgradeEffect(cat catalog.Category, level int) float64
}

// Stats holds current and potential values per axis. Values are unrounded.
type Stats struct {
	Health                float64 `json:"health"`
	PotentialHealth       float64 `json:"potentialHealth"`
	Dmg                   float64 `json:"dmg"`
	PotentialDmg          float64 `json:"potentialDmg"`
	Resist                float64 `json:"resist"`
	PotentialResist       float64 `json:"potentialResist"`
	HealthResist          float64 `json:"healthResist"`
	PotentialHealthResist float64 `json:"potentialHealthResist"`
}

// Kind classifies a Diagnostic.
type Kind string

// Diagnostic kinds.
const (
	MissingCharacter      Kind = "missing_character"
	MissingSpecialization Kind = "missing_specialization"
	MissingItem           Kind = "missing_item"
	MissingRarity         Kind = "missing_rarity"
)

// Diagnostic records a reference lookup that failed during Compute.
// The affected contribution was counted as zero.
type Diagnostic struct {
	Kind Kind
	// ID is the id that could not be resolved.
	ID string
	// Item is the jewel being processed, empty for hero-level lookups.
	Item string
}

// Error implements error.
func (d Diagnostic) Error() string {
	if d.Item == "" {
		return fmt.Sprintf("%s: %q", d.Kind, d.ID)
	}
	return fmt.Sprintf("%s: %q (item %q)", d.Kind, d.ID, d.Item)
}

// Result is the output of Compute.
type Result struct {
	Stats
	Diagnostics []Diagnostic
}

type axes struct {
	damage, health, armor float64
}

func (a *axes) add(axis catalog.Axis, v float64) {
	switch axis {
	case catalog.AxisDamage:
		a.damage += v
	case catalog.AxisHealth:
		a.health += v
	case catalog.AxisArmor:
		a.armor += v
	}
}

func (a *axes) scale(m axes) {
	a.damage *= m.damage
	a.health *= m.health
	a.armor *= m.armor
}

// Compute derives h's stats from its jewel list.
//
// Gear and soulstones are not counted. Unresolvable references add a
// Diagnostic and contribute zero; Compute never fails and never mutates h.
//
// Precondition: h and cat must not be nil.
func Compute(h *hero.Hero, cat Catalog) Result {
	var res Result

	mult := axes{damage: 1, health: 1, armor: 1}
	if bonus, diag := specializationBonus(h.ID, cat); diag != nil {
		res.Diagnostics = append(res.Diagnostics, *diag)
	} else {
		mult = axes{
			damage: 1 + bonus.Damage/100,
			health: 1 + bonus.Health/100,
			armor:  1 + bonus.Armor/100,
		}
	}

	order := cat.RarityOrder()
	exists := func(id rarity.ID) bool {
		_, ok := cat.Rarity(id)
		return ok
	}

	var boost, maxBoost axes
	for _, it := range h.Jewel {
		def, ok := cat.Item(catalog.CategoryJewel, it.ID)
		if !ok {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: MissingItem, ID: it.ID, Item: it.ID})
			continue
		}
		if it.Rarity == rarity.None {
			continue
		}
		cur, ok := cat.Rarity(it.Rarity)
		if !ok {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: MissingRarity, ID: string(it.Rarity), Item: it.ID})
			continue
		}
		axis, ok := def.Axis()
		if !ok {
			continue
		}

		ceiling := cur
		if id := CeilingRarity(order, it.Rarity, it.UnusedSeals, exists); id != it.Rarity {
			ceiling, _ = cat.Rarity(id)
		}

		current := cur.BaseEffectJewel + cat.UpgradeEffect(catalog.CategoryJewel, it.Level)
		potential := ceiling.BaseEffectJewel + cat.UpgradeEffect(catalog.CategoryJewel, ceiling.MaxLevel)
		boost.add(axis, current)
		maxBoost.add(axis, potential)
	}

	boost.scale(mult)
	maxBoost.scale(mult)

	res.Stats = Stats{
		Health:                boost.health,
		PotentialHealth:       maxBoost.health,
		Dmg:                   boost.damage,
		PotentialDmg:          maxBoost.damage,
		Resist:                boost.armor,
		PotentialResist:       maxBoost.armor,
		HealthResist:          boost.health + boost.armor,
		PotentialHealthResist: maxBoost.health + maxBoost.armor,
	}
	return res
}

func specializationBonus(heroID string, cat Catalog) (catalog.StatBonus, *Diagnostic) {
	ch, ok := cat.Character(heroID)
	if !ok {
		return catalog.StatBonus{}, &Diagnostic{Kind: MissingCharacter, ID: heroID}
	}
	spec, ok := cat.Specialization(ch.Spec)
	if !ok {
		return catalog.StatBonus{}, &Diagnostic{Kind: MissingSpecialization, ID: ch.Spec}
	}
	return spec.WMStatBonus, nil
}

// CeilingRarity walks order upward from current while the next rarity is in
// seals and exists reports it as defined. It returns the last rarity reached,
// which is current itself when the first step is not possible.
//
// A nil exists accepts every rarity in order.
func CeilingRarity(order rarity.Order, current rarity.ID, seals []rarity.ID, exists func(rarity.ID) bool) rarity.ID {
	ceiling := current
	for {
		next, ok := order.Next(ceiling)
		if !ok || !slices.Contains(seals, next) {
			return ceiling
		}
		if exists != nil && !exists(next) {
			return ceiling
		}
		ceiling = next
	}
}
