package crew_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firestone-manager/firestone/internal/game/crew"
	"github.com/firestone-manager/firestone/internal/game/hero"
	"github.com/firestone-manager/firestone/internal/game/rarity"
	"github.com/firestone-manager/firestone/internal/i18n"
)

func localizer(t *testing.T, locale string) *i18n.Localizer {
	t.Helper()
	b, err := i18n.Load()
	require.NoError(t, err)
	return b.Localizer(locale)
}

func TestWriteTable(t *testing.T) {
	cat, eng := setup(t)
	rows := crew.Build([]*hero.Hero{
		unlocked(cat, "talia", "aegis", rarity.Rare, 3),
		unlocked(cat, "stranger", "zeppelin", rarity.Common, 0),
	}, cat, eng)

	var buf bytes.Buffer
	require.NoError(t, crew.WriteTable(&buf, rows, localizer(t, "en-US")))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Character"))
	assert.Contains(t, lines[0], "Health + Armor (potential)")
	assert.Contains(t, lines[1], "Talia")
	assert.Contains(t, lines[1], "Aegis")
	assert.Contains(t, lines[1], "27.5")
	assert.Contains(t, lines[2], "character.stranger")
	assert.Contains(t, lines[2], "-")
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, crew.WriteTable(&buf, nil, localizer(t, "fr-FR")))
	assert.Equal(t, "Aucun héros débloqué.\n", buf.String())
}
