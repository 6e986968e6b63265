package booster

import (
	"fmt"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// Mystery-booster-style reprint packs stratify by a color/type schema instead
// of rarity: two cards per color, one multicolor, one artifact-or-land, one
// pre-modern-frame card, one rare or mythic, and a playtest-or-foil slot.

type mysteryPool struct {
	mono         map[string][]models.Card
	multicolor   []models.Card
	artifactLand []models.Card
	preModern    []models.Card
	rare         []models.Card
	playtest     []models.Card
	foilable     []models.Card
}

// Playtest cards ship under their own convention set codes.
var playtestSetCodes = map[string]bool{"cmb1": true, "cmb2": true}

func buildMysteryPool(cards []models.Card) *mysteryPool {
	p := &mysteryPool{mono: map[string][]models.Card{}}
	for _, c := range cards {
		if c.IsToken() || c.IsBasicLand() || c.Promo {
			continue
		}
		if playtestSetCodes[c.SetCode] {
			p.playtest = append(p.playtest, c)
			continue
		}
		switch {
		case c.Rarity >= models.Rare:
			p.rare = append(p.rare, c)
		case c.IsRetroFrame():
			p.preModern = append(p.preModern, c)
		case len(c.Colors) == 1 && c.Rarity <= models.Uncommon:
			p.mono[c.Colors[0]] = append(p.mono[c.Colors[0]], c)
		case len(c.Colors) > 1:
			p.multicolor = append(p.multicolor, c)
		case len(c.Colors) == 0:
			p.artifactLand = append(p.artifactLand, c)
		}
		if c.Foil {
			p.foilable = append(p.foilable, c)
		}
	}
	return p
}

const mysteryPackSize = 15

func (r *Run) nextMystery() (*models.Pack, error) {
	if r.mystery == nil {
		r.mystery = buildMysteryPool(r.cards)
	}
	p := r.mystery
	for _, col := range models.AllColors {
		if len(p.mono[col]) < 2 {
			return nil, fmt.Errorf("set %s: %w", r.Rules.Code, models.ErrNotInBoosters)
		}
	}

	for attempt := 1; attempt <= r.gen.retryCap(); attempt++ {
		pack := r.assembleMystery(p)
		if validateMystery(pack) {
			return pack, nil
		}
	}
	return nil, fmt.Errorf("set %s after %d attempts: %w",
		r.Rules.Code, r.gen.retryCap(), models.ErrGenerationExhausted)
}

func (r *Run) assembleMystery(p *mysteryPool) *models.Pack {
	pack := &models.Pack{SetCode: r.Rules.Code}
	names := map[string]bool{}

	for _, col := range models.AllColors {
		drawUniqueInto(r.rng, pack, p.mono[col], names)
		drawUniqueInto(r.rng, pack, p.mono[col], names)
	}
	drawUniqueInto(r.rng, pack, p.multicolor, names)
	drawUniqueInto(r.rng, pack, p.artifactLand, names)
	drawUniqueInto(r.rng, pack, p.preModern, names)
	drawUniqueInto(r.rng, pack, p.rare, names)

	// Convention packs dealt a playtest card here; retail runs got a foil.
	// The "retail" flag forces the foil variant.
	if len(p.playtest) > 0 && !r.opts.Flag("retail") && oneIn(r.rng, 2) {
		drawUniqueInto(r.rng, pack, p.playtest, names)
	} else if len(p.foilable) > 0 {
		for attempts := 0; attempts < len(p.foilable)*4+16; attempts++ {
			card := pick(r.rng, p.foilable)
			if names[card.Name] {
				continue
			}
			pack.AddFoil(card)
			names[card.Name] = true
			break
		}
	}

	return pack
}

func validateMystery(pack *models.Pack) bool {
	if len(pack.Cards) != mysteryPackSize {
		return false
	}
	return uniqueNames(pack) == mysteryPackSize && coversAllColors(pack)
}
