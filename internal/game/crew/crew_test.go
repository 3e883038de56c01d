package crew_test

import (
	"testing"

	"github.com/firestone-manager/firestone/internal/game/catalog"
	"github.com/firestone-manager/firestone/internal/game/crew"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/game/rarity"
	"github.com/firestone-manager/firestone/internal/game/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

func setup(t testing.TB) (*catalog.Catalog, *stats.Engine) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat, stats.NewLoggedEngine(cat, zap.NewNop())
}

func unlocked(cat *catalog.Catalog, id, wm string, jewelRarity rarity.ID, level int) *hero.Hero {
	h := hero.NewDefault(id, cat)
	h.Unlocked = true
	h.WarMachine = wm
	h.Jewel[0].Rarity = jewelRarity
	h.Jewel[0].Level = level
	return h
}

func ids(rows []crew.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Hero.ID
	}
	return out
}

func TestBuild_OnlyUnlockedHeroes(t *testing.T) {
	cat, eng := setup(t)
	locked := hero.NewDefault("leo", cat)
	rows := crew.Build([]*hero.Hero{
		unlocked(cat, "talia", "aegis", rarity.Rare, 3),
		locked,
		nil,
		unlocked(cat, "boris", hero.NoWarMachine, rarity.None, 0),
	}, cat, eng)

	require.Equal(t, []string{"talia", "boris"}, ids(rows))
	assert.Equal(t, "damage", rows[0].Spec)
	assert.Equal(t, "aegis", rows[0].WarMachine)
	assert.InDelta(t, 27.5, rows[0].Stats.Dmg, 1e-9)
	assert.Equal(t, hero.NoWarMachine, rows[1].WarMachine)
}

func TestBuild_UnknownWarMachineAndCharacter(t *testing.T) {
	cat, eng := setup(t)
	rows := crew.Build([]*hero.Hero{unlocked(cat, "stranger", "zeppelin", rarity.Common, 0)}, cat, eng)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].WarMachine)
	assert.Nil(t, rows[0].Character)
	assert.Empty(t, rows[0].Spec)
}

func TestSort_ByStatBothDirections(t *testing.T) {
	cat, eng := setup(t)
	rows := crew.Build([]*hero.Hero{
		unlocked(cat, "talia", "aegis", rarity.Rare, 3),
		unlocked(cat, "blaze", "goliath", rarity.Angel, 15),
		unlocked(cat, "astrid", "talos", rarity.Common, 0),
	}, cat, eng)

	crew.Sort(rows, crew.ByDmg, crew.Asc)
	assert.Equal(t, []string{"astrid", "talia", "blaze"}, ids(rows))
	crew.Sort(rows, crew.ByDmg, crew.Desc)
	assert.Equal(t, []string{"blaze", "talia", "astrid"}, ids(rows))
	crew.Sort(rows, crew.ByWarMachineName, crew.Asc)
	assert.Equal(t, []string{"talia", "blaze", "astrid"}, ids(rows))
	crew.Sort(rows, crew.ByCharacterName, crew.Asc)
	assert.Equal(t, []string{"astrid", "blaze", "talia"}, ids(rows))
}

func TestSort_TiesBreakByHeroID(t *testing.T) {
	cat, eng := setup(t)
	rows := crew.Build([]*hero.Hero{
		unlocked(cat, "muriel", hero.NoWarMachine, rarity.None, 0),
		unlocked(cat, "ayaan", hero.NoWarMachine, rarity.None, 0),
		unlocked(cat, "burt", hero.NoWarMachine, rarity.None, 0),
	}, cat, eng)
	crew.Sort(rows, crew.ByHealth, crew.Desc)
	assert.Equal(t, []string{"ayaan", "burt", "muriel"}, ids(rows))
}

func TestParseSortKey(t *testing.T) {
	k, err := crew.ParseSortKey("POTENTIALdmg")
	require.NoError(t, err)
	assert.Equal(t, crew.ByPotentialDmg, k)

	_, err = crew.ParseSortKey("gold")
	assert.ErrorIs(t, err, crew.ErrInvalidSortKey)

	d, err := crew.ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, crew.Desc, d)
	_, err = crew.ParseDirection("sideways")
	assert.ErrorIs(t, err, crew.ErrInvalidSortKey)
}

// Property: Sort yields a permutation ordered by the chosen key.
func TestSort_OrdersByKey(t *testing.T) {
	cat, eng := setup(t)
	chars := cat.Characters()
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, len(chars)).Draw(rt, "n")
		var heroes []*hero.Hero
		for _, ch := range chars[:n] {
			r := rapid.SampledFrom(append([]rarity.ID{rarity.None}, rarity.Default().IDs()...)).Draw(rt, "rarity")
			heroes = append(heroes, unlocked(cat, ch.ID, hero.NoWarMachine, r, rapid.IntRange(0, 2).Draw(rt, "level")))
		}
		key := rapid.SampledFrom(crew.SortKeys[3:]).Draw(rt, "key")
		rows := crew.Build(heroes, cat, eng)
		crew.Sort(rows, key, crew.Asc)
		require.Len(rt, rows, n)
		for i := 1; i < len(rows); i++ {
			assert.LessOrEqual(rt, statFor(key, rows[i-1].Stats), statFor(key, rows[i].Stats))
		}
	})
}

func statFor(key crew.SortKey, s stats.Stats) float64 {
	switch key {
	case crew.ByDmg:
		return s.Dmg
	case crew.ByPotentialDmg:
		return s.PotentialDmg
	case crew.ByHealth:
		return s.Health
	case crew.ByPotentialHealth:
		return s.PotentialHealth
	case crew.ByResist:
		return s.Resist
	case crew.ByPotentialResist:
		return s.PotentialResist
	case crew.ByHealthResist:
		return s.HealthResist
	}
	return s.PotentialHealthResist
}
