package booster

import (
	"fmt"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// Commander-Legends-style draft packs: 20 cards, two guaranteed legends drawn
// as a weighted rarity pair, a foil slot with etched/extended-art
// substitution, and a low-probability bonus legend.

// legendsPool splits the release into commander-eligible legends and
// everything else, plus the premium printings the foil slot substitutes.
type legendsPool struct {
	legends   models.RarityBuckets
	nonLegend models.RarityBuckets
	etched    models.RarityBuckets
	extended  models.RarityBuckets
	tokens    []models.Card
}

func buildLegendsPool(cards []models.Card) *legendsPool {
	p := &legendsPool{
		legends:   models.RarityBuckets{},
		nonLegend: models.RarityBuckets{},
		etched:    models.RarityBuckets{},
		extended:  models.RarityBuckets{},
	}
	for _, c := range cards {
		switch {
		case c.IsToken():
			p.tokens = append(p.tokens, c)
		case c.IsEtched():
			p.etched.Add(c)
		case c.IsExtendedArt():
			p.extended.Add(c)
		case !c.Booster || c.Promo:
			// premium-only printings stay out of the draft sheets
		case c.IsLegendary() && (c.IsCreature() || c.IsPlaneswalker()):
			p.legends.Add(c)
		case !c.IsBasicLand():
			p.nonLegend.Add(c)
		}
	}
	return p
}

// Legend rarity-pair weights, in half-percent units so the 0.5 weight stays
// integral: two-uncommon 17, uncommon+rare 12, two-rare 2, uncommon+mythic 1,
// rare+mythic 0.5, over a 32.5 total.
var legendPairs = []struct {
	weight int // weight * 2
	first  models.Rarity
	second models.Rarity
}{
	{34, models.Uncommon, models.Uncommon},
	{24, models.Uncommon, models.Rare},
	{4, models.Rare, models.Rare},
	{2, models.Uncommon, models.Mythic},
	{1, models.Rare, models.Mythic},
}

const legendPairTotal = 65 // sum of doubled weights

// drawLegendPair is a cumulative-weight draw over the pair table.
func drawLegendPair(rng Source) (models.Rarity, models.Rarity) {
	roll := rng.Intn(legendPairTotal)
	for _, pair := range legendPairs {
		if roll < pair.weight {
			return pair.first, pair.second
		}
		roll -= pair.weight
	}
	// Unreachable while the weights sum to legendPairTotal.
	return models.Uncommon, models.Uncommon
}

const (
	legendsPackSize  = 20
	legendsUncommons = 3
	bonusLegendOneIn = 12
)

func (r *Run) nextLegends() (*models.Pack, error) {
	if r.legends == nil {
		r.legends = buildLegendsPool(r.cards)
	}
	p := r.legends
	if p.legends.Count() == 0 || p.nonLegend.Count() == 0 {
		return nil, fmt.Errorf("set %s: %w", r.Rules.Code, models.ErrNotInBoosters)
	}

	for attempt := 1; attempt <= r.gen.retryCap(); attempt++ {
		pack := r.assembleLegends(p)
		if pack == nil || !validateLegends(pack, p) {
			continue
		}
		if len(p.tokens) > 0 {
			resolveToken(r.rng, pack, p.tokens)
		}
		return pack, nil
	}
	return nil, fmt.Errorf("set %s after %d attempts: %w",
		r.Rules.Code, r.gen.retryCap(), models.ErrGenerationExhausted)
}

func (r *Run) assembleLegends(p *legendsPool) *models.Pack {
	pack := &models.Pack{SetCode: r.Rules.Code}
	names := map[string]bool{}

	// Two guaranteed legends from a weighted rarity pair.
	first, second := drawLegendPair(r.rng)
	for _, rarity := range []models.Rarity{first, second} {
		if !drawUniqueInto(r.rng, pack, legendBucket(p.legends, rarity), names) {
			return nil
		}
	}

	// Foil slot: any rarity by the standard bands, preferring the etched
	// printing of the same name, then the extended-art one.
	foilR := foilRarity(r.rng)
	if bucket := fallbackBucket(p.nonLegend, foilR); len(bucket) > 0 {
		card := pick(r.rng, bucket)
		if etched, ok := findByName(p.etched, card.Name); ok {
			card = etched
		} else if ea, ok := findByName(p.extended, card.Name); ok {
			card = ea
		}
		pack.AddFoil(card)
		names[card.Name] = true
	}

	// One non-legend rare or mythic.
	rareBucket := p.nonLegend[models.Rare]
	if oneIn(r.rng, 8) && p.nonLegend.Has(models.Mythic) {
		rareBucket = p.nonLegend[models.Mythic]
	}
	if len(rareBucket) == 0 {
		rareBucket = p.nonLegend[models.Mythic]
	}
	drawUniqueInto(r.rng, pack, rareBucket, names)

	for i := 0; i < legendsUncommons; i++ {
		drawUniqueInto(r.rng, pack, p.nonLegend[models.Uncommon], names)
	}
	for len(pack.Cards) < legendsPackSize {
		if !drawUniqueInto(r.rng, pack, p.nonLegend[models.Common], names) {
			break
		}
	}

	// Bonus legend: a rare chance at a third, foil-etched legend.
	if oneIn(r.rng, bonusLegendOneIn) {
		if bucket := p.etched.All(); len(bucket) > 0 {
			card := pick(r.rng, bucket)
			if !names[card.Name] {
				pack.Cards = append(pack.Cards, models.CardSelection{Card: card, Foil: true})
				names[card.Name] = true
			}
		}
	}

	return pack
}

func validateLegends(pack *models.Pack, p *legendsPool) bool {
	if len(pack.Cards) < legendsPackSize {
		return false
	}
	if uniqueNames(pack) != len(pack.Cards) {
		return false
	}
	if poolSpansColors(p.nonLegend) && !coversAllColors(pack) {
		return false
	}
	legends := pack.CountBy(func(c models.Card) bool {
		return c.IsLegendary() && (c.IsCreature() || c.IsPlaneswalker())
	})
	return legends >= 2
}

// legendBucket falls back down the rarity ladder when the drawn band has no
// legends.
func legendBucket(buckets models.RarityBuckets, rarity models.Rarity) []models.Card {
	return fallbackBucket(buckets, rarity)
}

// fallbackBucket returns the bucket for rarity, walking down the ladder to
// the first non-empty one.
func fallbackBucket(buckets models.RarityBuckets, rarity models.Rarity) []models.Card {
	for r := rarity; ; r-- {
		if len(buckets[r]) > 0 {
			return buckets[r]
		}
		if r == models.Common {
			return nil
		}
	}
}

// drawUniqueInto deals one card from bucket avoiding names already in the
// pack. Reports whether a card was added.
func drawUniqueInto(rng Source, pack *models.Pack, bucket []models.Card, names map[string]bool) bool {
	if len(bucket) == 0 {
		return false
	}
	for attempts := 0; attempts < len(bucket)*4+16; attempts++ {
		card := pick(rng, bucket)
		if names[card.Name] {
			continue
		}
		pack.Add(card)
		names[card.Name] = true
		return true
	}
	return false
}

func poolSpansColors(buckets models.RarityBuckets) bool {
	union := buckets.Colors()
	for _, col := range models.AllColors {
		if !union[col] {
			return false
		}
	}
	return true
}
