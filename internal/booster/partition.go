package booster

import (
	"context"
	"fmt"
	"strings"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// CardSource is the slice of the card-data client the engine needs: the full
// card list for a release. The same contract serves as the supplemental
// source when a release borrows cards from a sibling set.
type CardSource interface {
	SetCards(ctx context.Context, setCode string) ([]models.Card, error)
}

// Partition splits the flat card list for one release into the slot pools the
// assembler draws from. It is a single pass with no randomness, so equal
// inputs always produce pools with identical membership. Supplemental fetches
// (borrowed lands, masterpieces, bonus sheets) happen here, synchronously,
// before any assembly begins.
func Partition(ctx context.Context, cards []models.Card, rules SetRules, opts Options, supp CardSource) (*models.CardPool, error) {
	if len(cards) == 0 {
		return nil, models.ErrNoCards
	}

	pool := models.NewCardPool(rules.Code)

	for _, c := range cards {
		if c.Lang != "" && c.Lang != "en" {
			continue
		}
		switch {
		case c.IsToken():
			if opts.IncludeTokens && rules.HasTokens {
				pool.Tokens = append(pool.Tokens, c)
			}
		case c.Layout == "meld" && !c.Booster:
			// Meld backs do not occupy a pack slot but ride along so the
			// table gets the combined face.
			pool.MeldResults = append(pool.MeldResults, c)
		case landSlotCard(c, rules.Mode):
			pool.BasicLands.Add(c)
		case customSlotCard(c, rules.Mode):
			pool.CustomSlot.Add(c)
		case c.IsShowcase() || c.IsBorderless():
			pool.Showcase.Add(c)
		case c.IsExtendedArt():
			pool.ExtendedArt.Add(c)
		case c.Booster && !c.Promo && !c.IsBasicLand():
			pool.Main.Add(c)
		}
	}

	if err := fetchSupplemental(ctx, pool, rules, opts, supp); err != nil {
		return nil, err
	}

	if pool.Main.Count() == 0 {
		return nil, fmt.Errorf("set %s: %w", rules.Code, models.ErrNotInBoosters)
	}
	return pool, nil
}

// landSlotCard decides whether a card belongs to the land slot under the
// active mode. Most modes take plain basics; a few releases dealt snow
// basics, gates, or common dual lands there instead.
func landSlotCard(c models.Card, mode Mode) bool {
	switch mode {
	case ModeSnowLand:
		return c.IsBasicLand() && strings.Contains(c.TypeLine, "Snow")
	case ModeGateLand:
		if c.IsBasicLand() {
			return true
		}
		return c.Rarity == models.Common && strings.Contains(c.TypeLine, "Gate")
	case ModeGainLand:
		if c.IsBasicLand() {
			return true
		}
		return c.Rarity == models.Common && c.IsLand() && len(c.ColorIdentity) == 2
	case ModeFullArtLand:
		return c.IsBasicLand() && c.HasFrameEffect("fullart")
	default:
		return c.IsBasicLand()
	}
}

// customSlotCard diverts cards into the mode's bonus slot.
func customSlotCard(c models.Card, mode Mode) bool {
	switch mode {
	case ModeFutureFrame:
		// Future-frame cards stay in the main pool; the validator enforces
		// their per-pack band instead of a dedicated slot.
		return false
	case ModeRetroFrame:
		return c.IsRetroFrame() && c.Booster
	case ModeConspiracyDraft:
		return strings.Contains(strings.ToLower(c.OracleText), "draft")
	case ModeContraption:
		return strings.Contains(c.TypeLine, "Contraption")
	default:
		return false
	}
}

// fetchSupplemental pulls cards the release borrows from sibling sets: basic
// lands, the masterpiece series, and bonus reprint sheets.
func fetchSupplemental(ctx context.Context, pool *models.CardPool, rules SetRules, opts Options, supp CardSource) error {
	if supp == nil {
		return nil
	}

	if rules.LandSet != "" && opts.IncludeBasicLands && pool.BasicLands.Count() == 0 {
		lands, err := supp.SetCards(ctx, rules.LandSet)
		if err != nil {
			return fmt.Errorf("fetch land set %s: %w", rules.LandSet, err)
		}
		for _, c := range lands {
			if landSlotCard(c, rules.Mode) {
				pool.BasicLands.Add(c)
			}
		}
	}

	if rules.MasterpieceSet != "" && rules.MasterpieceOneIn > 0 {
		pieces, err := supp.SetCards(ctx, rules.MasterpieceSet)
		if err != nil {
			return fmt.Errorf("fetch masterpiece set %s: %w", rules.MasterpieceSet, err)
		}
		for _, c := range pieces {
			if !c.IsToken() {
				pool.Masterpiece = append(pool.Masterpiece, c)
			}
		}
	}

	if rules.BonusSheetSet != "" {
		sheet, err := supp.SetCards(ctx, rules.BonusSheetSet)
		if err != nil {
			return fmt.Errorf("fetch bonus sheet %s: %w", rules.BonusSheetSet, err)
		}
		for _, c := range sheet {
			if !c.IsToken() && !c.IsBasicLand() {
				pool.CustomSlot.Add(c)
			}
		}
	}

	return nil
}
