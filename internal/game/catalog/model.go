// Package catalog holds the immutable reference data the tracker computes
// against: rarities, specializations, characters, item definitions, upgrade
// effect tables, and war machines.
package catalog

import (
	"errors"
	"fmt"

	"github.com/firestone-manager/firestone/internal/game/rarity"
)

// Category identifies one of the three equipment families a hero carries.
type Category string

// Category constants.
const (
	CategoryGear      Category = "gear"
	CategoryJewel     Category = "jewel"
	CategorySoulstone Category = "soulstone"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryGear, CategoryJewel, CategorySoulstone}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGear, CategoryJewel, CategorySoulstone:
		return true
	}
	return false
}

// Axis identifies a combat stat axis an item can contribute to.
type Axis string

// Axis constants.
const (
	AxisDamage Axis = "damage"
	AxisHealth Axis = "health"
	AxisArmor  Axis = "armor"
)

// BaseEffectGear holds a rarity's gear multipliers per effect base.
type BaseEffectGear struct {
	Tier1 float64 `yaml:"tier1"`
	Tier2 float64 `yaml:"tier2"`
	Ring  float64 `yaml:"ring"`
	Relic float64 `yaml:"relic"`
}

// BaseEffectSoulstone holds a rarity's soulstone multipliers per effect base.
type BaseEffectSoulstone struct {
	Tier1    float64 `yaml:"tier1"`
	Wisdom   float64 `yaml:"wisdom"`
	Faith    float64 `yaml:"faith"`
	Charisma float64 `yaml:"charisma"`
}

// Rarity is the static record for one rarity tier.
type Rarity struct {
	ID                  rarity.ID           `yaml:"id"`
	MaxLevel            int                 `yaml:"max_level"`
	HasSeal             bool                `yaml:"has_seal"`
	BaseEffectJewel     float64             `yaml:"base_effect_jewel"`
	BaseEffectGear      BaseEffectGear      `yaml:"base_effect_gear"`
	BaseEffectSoulstone BaseEffectSoulstone `yaml:"base_effect_soulstone"`
}

// Validate checks that the Rarity satisfies its invariants.
//
// Postcondition: returns nil iff ID is a real rarity id and MaxLevel >= 0.
func (r *Rarity) Validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if r.ID == rarity.None {
		errs = append(errs, fmt.Errorf("id %q is reserved", rarity.None))
	}
	if r.MaxLevel < 0 {
		errs = append(errs, fmt.Errorf("max_level must be >= 0, got %d", r.MaxLevel))
	}
	return errors.Join(errs...)
}

// StatBonus is a set of flat percentages per axis; 10 means +10%.
type StatBonus struct {
	Damage float64 `yaml:"damage"`
	Health float64 `yaml:"health"`
	Armor  float64 `yaml:"armor"`
}

// Specialization is a character role granting war machine stat bonuses.
type Specialization struct {
	ID          string    `yaml:"id"`
	WMStatBonus StatBonus `yaml:"wm_stat_bonus"`
}

// Character is the static definition of a playable character.
type Character struct {
	ID          string `yaml:"id"`
	Merc        bool   `yaml:"merc"`
	God         bool   `yaml:"god"`
	Spec        string `yaml:"spec"`
	UnlockStage int    `yaml:"unlock_stage"`
}

// ItemDef is the static definition of an equipment slot within a category.
//
// Gear and soulstone files name the armor axis "resistance"; the loader folds
// it into Armor so every category exposes the same three axes.
type ItemDef struct {
	ID         string   `yaml:"id"`
	Category   Category `yaml:"-"`
	Tier       int      `yaml:"tier"`
	Position   int      `yaml:"position"`
	EffectType string   `yaml:"effect_type"`
	EffectBase string   `yaml:"effect_base"`
	Damage     float64  `yaml:"damage"`
	Health     float64  `yaml:"health"`
	Armor      float64  `yaml:"armor"`
	Resistance float64  `yaml:"resistance"`
	Gold       float64  `yaml:"gold"`
	Firestones float64  `yaml:"firestones"`
}

// Axis returns the single stat axis this definition contributes to.
//
// Postcondition: ok is false when no axis carries a positive value. When more
// than one does, damage wins over health, and health over armor.
func (d *ItemDef) Axis() (Axis, bool) {
	switch {
	case d.Damage > 0:
		return AxisDamage, true
	case d.Health > 0:
		return AxisHealth, true
	case d.Armor > 0:
		return AxisArmor, true
	}
	return "", false
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff the definition is well formed; jewels must
// be single-purpose (at most one positive axis).
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if !d.Category.Valid() {
		errs = append(errs, fmt.Errorf("category %q is not one of gear, jewel, soulstone", d.Category))
	}
	if d.Tier < 1 {
		errs = append(errs, fmt.Errorf("tier must be >= 1, got %d", d.Tier))
	}
	if d.Category == CategoryJewel {
		positive := 0
		for _, v := range []float64{d.Damage, d.Health, d.Armor} {
			if v > 0 {
				positive++
			}
		}
		if positive > 1 {
			errs = append(errs, fmt.Errorf("jewel %q contributes to %d axes; jewels are single-purpose", d.ID, positive))
		}
	}
	return errors.Join(errs...)
}
