package booster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

func tokenCard(name, id string) models.Card {
	return makeCard(cardSpec{name: name, rarity: models.Common, tweak: func(c *models.Card) {
		c.ID = id
		c.Layout = "token"
		c.TypeLine = "Token Creature — " + name
	}})
}

func TestResolveTokenPrefersRelatedPart(t *testing.T) {
	soldier := tokenCard("Soldier", "tok-soldier")
	goblin := tokenCard("Goblin", "tok-goblin")

	pack := &models.Pack{SetCode: "tst"}
	pack.Add(makeCard(cardSpec{name: "Captain", rarity: models.Rare, color: models.White,
		tweak: func(c *models.Card) {
			c.AllParts = []models.RelatedCard{{ID: "tok-soldier", Component: "token", Name: "Soldier"}}
		}}))

	for i := 0; i < 20; i++ {
		pack.Tokens = nil
		resolveToken(testRand(), pack, []models.Card{goblin, soldier})
		require.Len(t, pack.Tokens, 1)
		assert.Equal(t, "Soldier", pack.Tokens[0].Card.Name)
	}
}

func TestResolveTokenMatchesOracleText(t *testing.T) {
	thopter := tokenCard("Thopter", "tok-thopter")
	wurm := tokenCard("Wurm", "tok-wurm")

	pack := &models.Pack{SetCode: "tst"}
	pack.Add(makeCard(cardSpec{name: "Foundry", rarity: models.Uncommon,
		tweak: func(c *models.Card) {
			c.OracleText = "Create a 1/1 colorless Thopter token with flying."
		}}))

	for i := 0; i < 20; i++ {
		pack.Tokens = nil
		resolveToken(testRand(), pack, []models.Card{wurm, thopter})
		require.Len(t, pack.Tokens, 1)
		assert.Equal(t, "Thopter", pack.Tokens[0].Card.Name)
	}
}

func TestResolveTokenMatchesCreatureTokenText(t *testing.T) {
	soldier := tokenCard("Soldier", "tok-soldier")
	wurm := tokenCard("Wurm", "tok-wurm")

	pack := &models.Pack{SetCode: "tst"}
	pack.Add(makeCard(cardSpec{name: "Recruiter", rarity: models.Common, color: models.White,
		tweak: func(c *models.Card) {
			c.OracleText = "When this creature dies, create a 1/1 white Soldier creature token."
		}}))

	for i := 0; i < 20; i++ {
		pack.Tokens = nil
		resolveToken(testRand(), pack, []models.Card{wurm, soldier})
		require.Len(t, pack.Tokens, 1)
		assert.Equal(t, "Soldier", pack.Tokens[0].Card.Name)
	}
}

func TestTokenNamedInText(t *testing.T) {
	assert.True(t, tokenNamedInText("Create a Treasure token.", "Treasure"))
	assert.True(t, tokenNamedInText("create a 1/1 white Soldier creature token", "Soldier"))
	assert.True(t, tokenNamedInText("create a 1/1 colorless Thopter artifact creature token", "Thopter"))
	assert.False(t, tokenNamedInText("Soldiers you control get +1/+1.", "Soldier"))
	assert.False(t, tokenNamedInText("Destroy target creature token.", "Wurm"))
}

func TestResolveTokenMatchesWalkerEmblem(t *testing.T) {
	emblem := makeCard(cardSpec{name: "Chandra, Torch of Defiance Emblem",
		tweak: func(c *models.Card) { c.Layout = "emblem"; c.TypeLine = "Emblem — Chandra" }})
	bird := tokenCard("Bird", "tok-bird")

	pack := &models.Pack{SetCode: "tst"}
	pack.Add(makeCard(cardSpec{name: "Chandra, Torch of Defiance", rarity: models.Mythic, color: models.Red,
		tweak: func(c *models.Card) { c.TypeLine = "Legendary Planeswalker — Chandra" }}))

	for i := 0; i < 20; i++ {
		pack.Tokens = nil
		resolveToken(testRand(), pack, []models.Card{bird, emblem})
		require.Len(t, pack.Tokens, 1)
		assert.Equal(t, emblem.Name, pack.Tokens[0].Card.Name)
	}
}

func TestResolveTokenFallsBackToAnyToken(t *testing.T) {
	goblin := tokenCard("Goblin", "tok-goblin")
	pack := &models.Pack{SetCode: "tst"}
	pack.Add(makeCard(cardSpec{name: "Plain Bear", rarity: models.Common, color: models.Green}))

	resolveToken(testRand(), pack, []models.Card{goblin})
	require.Len(t, pack.Tokens, 1)
	assert.Equal(t, "Goblin", pack.Tokens[0].Card.Name)
}

func TestResolveTokenNoPool(t *testing.T) {
	pack := &models.Pack{SetCode: "tst"}
	resolveToken(testRand(), pack, nil)
	assert.Empty(t, pack.Tokens)
}

func TestAttachMeldResults(t *testing.T) {
	result := makeCard(cardSpec{name: "Brisela, Voice of Nightmares",
		tweak: func(c *models.Card) { c.ID = "meld-brisela"; c.Layout = "meld" }})

	pack := &models.Pack{SetCode: "tst"}
	pack.Add(makeCard(cardSpec{name: "Bruna, the Fading Light", rarity: models.Rare, color: models.White,
		tweak: func(c *models.Card) {
			c.Layout = "meld"
			c.AllParts = []models.RelatedCard{
				{ID: "meld-brisela", Component: "meld_result", Name: "Brisela, Voice of Nightmares"},
			}
		}}))

	attachMeldResults(pack, []models.Card{result})
	require.Len(t, pack.Tokens, 1)
	assert.Equal(t, result.Name, pack.Tokens[0].Card.Name)

	// Attaching again must not duplicate the ride-along face.
	attachMeldResults(pack, []models.Card{result})
	assert.Len(t, pack.Tokens, 1)
}

func TestAttachMeldResultsNoHalfInPack(t *testing.T) {
	result := makeCard(cardSpec{name: "Brisela, Voice of Nightmares",
		tweak: func(c *models.Card) { c.ID = "meld-brisela"; c.Layout = "meld" }})
	pack := &models.Pack{SetCode: "tst"}
	pack.Add(makeCard(cardSpec{name: "Plain Bear", rarity: models.Common, color: models.Green}))

	attachMeldResults(pack, []models.Card{result})
	assert.Empty(t, pack.Tokens)
}
