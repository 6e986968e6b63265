package booster

import (
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// validate checks a candidate pack against the release's invariants. A false
// return discards the candidate wholesale; nothing is repaired in place.
func validate(pack *models.Pack, pool *models.CardPool, rules SetRules, meta assembleMeta) bool {
	if len(pack.Cards) != meta.mainTarget {
		return false
	}
	if uniqueNames(pack) != meta.mainTarget {
		return false
	}
	if pool.HasAllColors() && !coversAllColors(pack) {
		return false
	}
	if !partnersPaired(pack) {
		return false
	}
	return modeGuarantee(pack, rules, meta)
}

func uniqueNames(pack *models.Pack) int {
	seen := map[string]struct{}{}
	for _, sel := range pack.Cards {
		seen[sel.Card.Name] = struct{}{}
	}
	return len(seen)
}

// coversAllColors demands the non-land color union span all five colors.
func coversAllColors(pack *models.Pack) bool {
	union := pack.ColorUnion()
	for _, col := range models.AllColors {
		if !union[col] {
			return false
		}
	}
	return true
}

// partnersPaired verifies every card naming a specific partner travels with
// that exact card.
func partnersPaired(pack *models.Pack) bool {
	for _, sel := range pack.Cards {
		if !sel.Card.HasPartnerWith() {
			continue
		}
		if !pack.ContainsName(sel.Card.PartnerName()) {
			return false
		}
	}
	return true
}

// Bounds for the future-frame band checked under ModeFutureFrame.
const (
	futureFrameMin = 5
	futureFrameMax = 10
)

// modeGuarantee enforces the active mode's structural promise.
func modeGuarantee(pack *models.Pack, rules SetRules, meta assembleMeta) bool {
	if meta.showcaseRolled {
		showcase := pack.CountBy(func(c models.Card) bool {
			return c.IsShowcase() || c.IsBorderless()
		})
		if showcase == 0 {
			return false
		}
	}
	if rules.Mode.guaranteesDoubleFaced() {
		return pack.CountBy(models.Card.IsDoubleFaced) > 0
	}
	switch rules.Mode {
	case ModeLegendary:
		return pack.CountBy(models.Card.IsLegendaryCreature) > 0
	case ModePlaneswalker:
		return pack.CountBy(models.Card.IsPlaneswalker) > 0
	case ModeFutureFrame:
		n := pack.CountBy(models.Card.IsFutureFrame)
		return n >= futureFrameMin && n <= futureFrameMax
	default:
		return true
	}
}
