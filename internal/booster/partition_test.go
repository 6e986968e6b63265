package booster

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

func TestPartitionBaseline(t *testing.T) {
	pool, err := Partition(context.Background(), syntheticSet(), baselineRules(), DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, 50, len(pool.Main[models.Common]))
	assert.Equal(t, 15, len(pool.Main[models.Uncommon]))
	assert.Equal(t, 5, len(pool.Main[models.Rare]))
	assert.Equal(t, 5, len(pool.Main[models.Mythic]))
	assert.Equal(t, 5, pool.BasicLands.Count())
	assert.Len(t, pool.Tokens, 1)
	assert.True(t, pool.HasAllColors())
}

func TestPartitionIdempotent(t *testing.T) {
	cards := syntheticSet()
	a, err := Partition(context.Background(), cards, baselineRules(), DefaultOptions(), nil)
	require.NoError(t, err)
	b, err := Partition(context.Background(), cards, baselineRules(), DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, poolNames(a.Main), poolNames(b.Main))
	assert.Equal(t, poolNames(a.BasicLands), poolNames(b.BasicLands))
	assert.Equal(t, len(a.Tokens), len(b.Tokens))
}

func poolNames(buckets models.RarityBuckets) []string {
	var names []string
	for _, c := range buckets.All() {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

func TestPartitionDivertsSpecialFrames(t *testing.T) {
	cards := syntheticSet()
	cards = append(cards,
		makeCard(cardSpec{name: "Showy Rare", rarity: models.Rare, color: models.Red,
			tweak: func(c *models.Card) { c.FrameEffects = []string{"showcase"} }}),
		makeCard(cardSpec{name: "Wide Rare", rarity: models.Rare, color: models.Blue,
			tweak: func(c *models.Card) { c.FrameEffects = []string{"extendedart"} }}),
		makeCard(cardSpec{name: "Frameless Walker", rarity: models.Mythic, color: models.Black,
			tweak: func(c *models.Card) {
				c.BorderColor = "borderless"
				c.TypeLine = "Legendary Planeswalker — Test"
			}}),
	)

	pool, err := Partition(context.Background(), cards, baselineRules(), DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, pool.Showcase.Count()) // showcase + borderless
	assert.Equal(t, 1, pool.ExtendedArt.Count())
	_, inMain := findByName(pool.Main, "Showy Rare")
	assert.False(t, inMain)
}

func TestPartitionFiltersNonBooster(t *testing.T) {
	cards := syntheticSet()
	cards = append(cards,
		makeCard(cardSpec{name: "Promo Thing", rarity: models.Rare, color: models.Red,
			tweak: func(c *models.Card) { c.Promo = true }}),
		makeCard(cardSpec{name: "Box Topper", rarity: models.Mythic, color: models.Blue,
			tweak: func(c *models.Card) { c.Booster = false }}),
		makeCard(cardSpec{name: "Japanese Print", rarity: models.Common, color: models.Green,
			tweak: func(c *models.Card) { c.Lang = "ja" }}),
	)

	pool, err := Partition(context.Background(), cards, baselineRules(), DefaultOptions(), nil)
	require.NoError(t, err)

	for _, name := range []string{"Promo Thing", "Box Topper", "Japanese Print"} {
		_, found := findByName(pool.Main, name)
		assert.False(t, found, name)
	}
}

func TestPartitionNotInBoosters(t *testing.T) {
	var cards []models.Card
	for i := 0; i < 5; i++ {
		cards = append(cards, makeCard(cardSpec{
			name: "Outside Print", rarity: models.Rare, color: models.Red,
			tweak: func(c *models.Card) { c.Booster = false },
		}))
	}
	_, err := Partition(context.Background(), cards, baselineRules(), DefaultOptions(), nil)
	assert.ErrorIs(t, err, models.ErrNotInBoosters)
}

func TestPartitionEmptyInput(t *testing.T) {
	_, err := Partition(context.Background(), nil, baselineRules(), DefaultOptions(), nil)
	assert.ErrorIs(t, err, models.ErrNoCards)
}

func TestPartitionBorrowsLands(t *testing.T) {
	cards := syntheticSet()
	// Strip the set's own lands.
	var noLands []models.Card
	for _, c := range cards {
		if !c.IsBasicLand() {
			noLands = append(noLands, c)
		}
	}

	supp := newFakeSource()
	supp.sets["ktk"] = []models.Card{
		makeCard(cardSpec{name: "Plains", rarity: models.Common,
			tweak: func(c *models.Card) { c.TypeLine = "Basic Land"; c.SetCode = "ktk" }}),
	}

	rules := baselineRules()
	rules.LandSet = "ktk"
	pool, err := Partition(context.Background(), noLands, rules, DefaultOptions(), supp)
	require.NoError(t, err)

	assert.Equal(t, 1, pool.BasicLands.Count())
	assert.Equal(t, 1, supp.calls["ktk"])
}

func TestPartitionFetchesMasterpieces(t *testing.T) {
	supp := newFakeSource()
	supp.sets["exp"] = []models.Card{
		makeCard(cardSpec{name: "Fancy Land", rarity: models.Mythic,
			tweak: func(c *models.Card) { c.SetCode = "exp"; c.TypeLine = "Land" }}),
	}

	rules := baselineRules()
	rules.MasterpieceSet = "exp"
	rules.MasterpieceOneIn = 129
	pool, err := Partition(context.Background(), syntheticSet(), rules, DefaultOptions(), supp)
	require.NoError(t, err)
	assert.Len(t, pool.Masterpiece, 1)
}

func TestPartitionSkipsTokensWhenDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeTokens = false
	pool, err := Partition(context.Background(), syntheticSet(), baselineRules(), opts, nil)
	require.NoError(t, err)
	assert.Empty(t, pool.Tokens)
}
