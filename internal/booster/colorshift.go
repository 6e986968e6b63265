package booster

import (
	"fmt"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// Planar-Chaos-style packs draw from two pools: the normal print run and the
// color-shifted one, with fixed slot counts per pool.

type colorshiftPool struct {
	normal  models.RarityBuckets
	shifted models.RarityBuckets
	tokens  []models.Card
}

func buildColorshiftPool(cards []models.Card) *colorshiftPool {
	p := &colorshiftPool{normal: models.RarityBuckets{}, shifted: models.RarityBuckets{}}
	for _, c := range cards {
		switch {
		case c.IsToken():
			p.tokens = append(p.tokens, c)
		case !c.Booster || c.Promo || c.IsBasicLand():
		case c.IsColorshifted():
			p.shifted.Add(c)
		default:
			p.normal.Add(c)
		}
	}
	return p
}

const (
	colorshiftPackSize     = 15
	colorshiftNormalCommon = 8
	colorshiftNormalUnco   = 2
	colorshiftShiftCommon  = 3
	// The shifted uncommon-or-rare slot upgrades one draw in four.
	colorshiftRareOneIn = 4
)

func (r *Run) nextColorshift() (*models.Pack, error) {
	if r.colorshift == nil {
		r.colorshift = buildColorshiftPool(r.cards)
	}
	p := r.colorshift
	if p.normal.Count() == 0 || p.shifted.Count() == 0 {
		return nil, fmt.Errorf("set %s: %w", r.Rules.Code, models.ErrNotInBoosters)
	}

	for attempt := 1; attempt <= r.gen.retryCap(); attempt++ {
		pack := r.assembleColorshift(p)
		if validateColorshift(pack) {
			if len(p.tokens) > 0 {
				resolveToken(r.rng, pack, p.tokens)
			}
			return pack, nil
		}
	}
	return nil, fmt.Errorf("set %s after %d attempts: %w",
		r.Rules.Code, r.gen.retryCap(), models.ErrGenerationExhausted)
}

func (r *Run) assembleColorshift(p *colorshiftPool) *models.Pack {
	pack := &models.Pack{SetCode: r.Rules.Code}
	names := map[string]bool{}

	for i := 0; i < colorshiftNormalCommon; i++ {
		drawUniqueInto(r.rng, pack, p.normal[models.Common], names)
	}
	for i := 0; i < colorshiftNormalUnco; i++ {
		drawUniqueInto(r.rng, pack, p.normal[models.Uncommon], names)
	}
	drawUniqueInto(r.rng, pack, fallbackBucket(p.normal, models.Rare), names)

	for i := 0; i < colorshiftShiftCommon; i++ {
		drawUniqueInto(r.rng, pack, p.shifted[models.Common], names)
	}
	shiftBucket := p.shifted[models.Uncommon]
	if oneIn(r.rng, colorshiftRareOneIn) && p.shifted.Has(models.Rare) {
		shiftBucket = p.shifted[models.Rare]
	}
	if len(shiftBucket) == 0 {
		shiftBucket = fallbackBucket(p.shifted, models.Rare)
	}
	drawUniqueInto(r.rng, pack, shiftBucket, names)

	return pack
}

func validateColorshift(pack *models.Pack) bool {
	if len(pack.Cards) != colorshiftPackSize {
		return false
	}
	return uniqueNames(pack) == colorshiftPackSize && coversAllColors(pack)
}
