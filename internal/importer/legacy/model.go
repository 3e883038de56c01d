// Package legacy converts the flat key/value save dump written by the first
// crew tracker into hero records.
//
// The dump is one JSON object whose keys look like
//
//	<hero>-WM                      war machine index
//	<hero>-<category>-<item>-rarity  rarity index
//	<hero>-<category>-<item>-level   upgrade level
//
// where category is gears, jewels or soulstones.
package legacy

import "github.com/firestone-manager/firestone/internal/game/rarity"

// RarityMap maps a dump rarity index to a rarity id.
var RarityMap = []rarity.ID{
	rarity.None, rarity.Common, rarity.Uncommon, rarity.Rare, rarity.Epic,
	rarity.Legendary, rarity.Mythic, rarity.Titan, rarity.Angel,
}

// WarMachineMap maps a dump war machine index to a war machine id.
var WarMachineMap = []string{
	"none", "goliath", "fortress", "earthshatterer", "sentinel", "hunter", "curator",
	"thunderclap", "judgement", "harvester", "talos", "firecracker", "cloudfist", "aegis",
}

// Dump category keys.
const (
	CategoryGears      = "gears"
	CategoryJewels     = "jewels"
	CategorySoulstones = "soulstones"
)

// ItemTypes lists the item ids the dump knows per category.
var ItemTypes = map[string][]string{
	CategoryGears:      {"weapon", "chest", "boots", "wrist", "shoulder", "belt", "ring", "relic"},
	CategoryJewels:     {"ankh", "rune", "idol", "talisman", "necklace", "trinket"},
	CategorySoulstones: {"focus", "stamina", "courage", "wisdom", "faith", "charisma"},
}

const (
	warMachineMarker = "WM"
	propRarity       = "rarity"
	propLevel        = "level"
)

// Entry is one key/value pair of the dump, in file order.
type Entry struct {
	Key   string
	Value any
}
