package decklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

func TestParseArenaExport(t *testing.T) {
	list, err := Parse(`Deck
4 Lightning Bolt (2X2) 117
2x Counterspell
Island

Sideboard
3 Pyroblast
`)
	require.NoError(t, err)
	require.Len(t, list.Sections, 2)

	deck := list.Sections[0]
	assert.Equal(t, "Deck", deck.Name)
	require.Len(t, deck.Entries, 3)

	bolt := deck.Entries[0]
	assert.Equal(t, "Lightning Bolt", bolt.Name)
	assert.Equal(t, "2x2", bolt.Set)
	assert.Equal(t, "117", bolt.CollectorNumber)
	assert.Equal(t, 4, bolt.Count)

	assert.Equal(t, Entry{Name: "Counterspell", Count: 2}, deck.Entries[1])
	assert.Equal(t, Entry{Name: "Island", Count: 1}, deck.Entries[2])

	side := list.Sections[1]
	assert.Equal(t, "Sideboard", side.Name)
	require.Len(t, side.Entries, 1)
	assert.Equal(t, 3, side.Entries[0].Count)

	assert.Equal(t, 10, list.Cards())
}

func TestParseBlankLineStartsSideboard(t *testing.T) {
	list, err := Parse("4 Brainstorm\n4 Ponder\n\n2 Flusterstorm\n")
	require.NoError(t, err)
	require.Len(t, list.Sections, 2)
	assert.Equal(t, "Deck", list.Sections[0].Name)
	assert.Equal(t, "Sideboard", list.Sections[1].Name)
	assert.Equal(t, "Flusterstorm", list.Sections[1].Entries[0].Name)
}

func TestParseCommanderHeader(t *testing.T) {
	list, err := Parse("Commander:\n1 Kenrith, the Returned King\nDeck\n99 Island\n")
	require.NoError(t, err)
	require.Len(t, list.Sections, 2)
	assert.Equal(t, "Commander", list.Sections[0].Name)
	assert.Equal(t, "Kenrith, the Returned King", list.Sections[0].Entries[0].Name)
}

func TestParseSkipsCommentsAndJunk(t *testing.T) {
	list, err := Parse("// my list\n# exported today\n4 Lightning Bolt\n0 Nothing\n")
	require.NoError(t, err)
	require.Len(t, list.Sections, 1)
	require.Len(t, list.Sections[0].Entries, 1)
	assert.Equal(t, "Lightning Bolt", list.Sections[0].Entries[0].Name)
}

func TestParseEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t\n", "// only comments\n"} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, models.ErrEmptyInput, "input %q", text)
	}
}

func TestParseSplitCardName(t *testing.T) {
	list, err := Parse("4 Fire // Ice\n")
	require.NoError(t, err)
	assert.Equal(t, "Fire // Ice", list.Sections[0].Entries[0].Name)
}
