package booster

import (
	"fmt"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// FoilPolicy is the per-mille chance that the foil slot activates.
type FoilPolicy int

const (
	// FoilLegacy is the pre-2020 pull rate.
	FoilLegacy FoilPolicy = 225
	// FoilModern is the one-in-three era rate.
	FoilModern FoilPolicy = 334
	// FoilGuaranteed is the near-certain rate used by premium products.
	FoilGuaranteed FoilPolicy = 981
)

// rolls reports whether the foil slot activates on this draw.
func (f FoilPolicy) rolls(rng Source) bool {
	return rng.Intn(1000) < int(f)
}

// Foil rarity sub-distribution, cumulative per-mille bands.
const (
	foilBandCommon   = 500
	foilBandUncommon = 833
	foilBandRare     = 979
	// remainder through 1000 is mythic
)

// foilRarity draws the rarity of a foil using the cumulative bands.
func foilRarity(rng Source) models.Rarity {
	roll := rng.Intn(1000)
	switch {
	case roll < foilBandCommon:
		return models.Common
	case roll < foilBandUncommon:
		return models.Uncommon
	case roll < foilBandRare:
		return models.Rare
	default:
		return models.Mythic
	}
}

// MythicPolicy selects how the rare slot upgrades to mythic.
type MythicPolicy int

const (
	// MythicNone is for releases predating the mythic rarity.
	MythicNone MythicPolicy = iota
	// MythicEighth upgrades on a 1-in-8 draw.
	MythicEighth
	// MythicPercentile upgrades when a d100 lands at or above the cutoff.
	MythicPercentile
)

// mythicPercentileCutoff: a draw in [0,100) at or above this value upgrades
// the slot, so roughly 26% of draws come up mythic under MythicPercentile.
const mythicPercentileCutoff = 74

// rolls reports whether the rare slot upgrades to mythic on this draw.
func (m MythicPolicy) rolls(rng Source) bool {
	switch m {
	case MythicEighth:
		return rng.Intn(8) == 0
	case MythicPercentile:
		return rng.Intn(100) >= mythicPercentileCutoff
	default:
		return false
	}
}

func (m MythicPolicy) String() string {
	switch m {
	case MythicNone:
		return "none"
	case MythicEighth:
		return "eighth"
	case MythicPercentile:
		return "percentile"
	default:
		return fmt.Sprintf("mythic(%d)", int(m))
	}
}

// Land slot rarity ladder: one d13; 0 hits the rare-or-better bucket when the
// set prints such lands, 1 through 3 the uncommon bucket, the rest common.
const (
	landLadderSides   = 13
	landLadderRareMax = 1
	landLadderUncoMax = 4
)

// landSlotRarity walks the ladder against the available land buckets.
func landSlotRarity(rng Source, lands models.RarityBuckets) models.Rarity {
	roll := rng.Intn(landLadderSides)
	if roll < landLadderRareMax && (lands.Has(models.Rare) || lands.Has(models.Mythic)) {
		if lands.Has(models.Rare) {
			return models.Rare
		}
		return models.Mythic
	}
	if roll < landLadderUncoMax && lands.Has(models.Uncommon) {
		return models.Uncommon
	}
	return models.Common
}
