package booster

import "fmt"

// Mode names the one structural deviation a release makes from the default
// slot model. Exactly one mode is active per generation run.
type Mode int

const (
	// ModeDefault is the plain modern booster: land, foil chance, one rare
	// slot, three uncommons, commons, maybe a token.
	ModeDefault Mode = iota
	// ModeLegendary guarantees a legendary creature (Dominaria sets).
	ModeLegendary
	// ModePlaneswalker guarantees a planeswalker (War of the Spark).
	ModePlaneswalker
	// ModeModalDFC guarantees a modal double-faced card at common or
	// uncommon, with a small upgrade chance to rare or mythic.
	ModeModalDFC
	// ModeTransformDFC guarantees a transforming double-faced card of any
	// rarity (Innistrad-style sets).
	ModeTransformDFC
	// ModeDoubleRare doubles the rare slot and the foil slot and drops the
	// land slot (Double Masters).
	ModeDoubleRare
	// ModeFutureFrame targets a band of future-frame cards per pack.
	ModeFutureFrame
	// ModeTimeshifted adds a bonus slot fed from the timeshifted sheet.
	ModeTimeshifted
	// ModeRetroFrame adds a bonus slot of retro-frame reprints.
	ModeRetroFrame
	// ModeBonusSheet adds a bonus slot fed from a companion reprint sheet
	// (Mystical Archive, Enchanting Tales and friends).
	ModeBonusSheet
	// ModeSnowLand fills the land slot from snow-covered basics.
	ModeSnowLand
	// ModeTwoBasics deals two basic lands instead of one (starter-level
	// sets that seeded manabases from boosters).
	ModeTwoBasics
	// ModeNoBasics drops the land slot and backfills with a common.
	ModeNoBasics
	// ModeGateLand fills the land slot with common gates.
	ModeGateLand
	// ModeGainLand fills the land slot with common dual lands.
	ModeGainLand
	// ModeFullArtLand fills the land slot with full-art basics.
	ModeFullArtLand
	// ModeConspiracyDraft adds a draft-matters card slot.
	ModeConspiracyDraft
	// ModeContraption adds a contraption slot and always attaches a token.
	ModeContraption
)

var modeNames = map[Mode]string{
	ModeDefault:         "default",
	ModeLegendary:       "legendary",
	ModePlaneswalker:    "planeswalker",
	ModeModalDFC:        "modal_dfc",
	ModeTransformDFC:    "transform_dfc",
	ModeDoubleRare:      "double_rare",
	ModeFutureFrame:     "future_frame",
	ModeTimeshifted:     "timeshifted",
	ModeRetroFrame:      "retro_frame",
	ModeBonusSheet:      "bonus_sheet",
	ModeSnowLand:        "snow_land",
	ModeTwoBasics:       "two_basics",
	ModeNoBasics:        "no_basics",
	ModeGateLand:        "gate_land",
	ModeGainLand:        "gain_land",
	ModeFullArtLand:     "full_art_land",
	ModeConspiracyDraft: "conspiracy_draft",
	ModeContraption:     "contraption",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode is the inverse of String; it reads rule-table entries.
func ParseMode(s string) (Mode, error) {
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeDefault, fmt.Errorf("unknown mode %q", s)
}

// guaranteesDoubleFaced reports modes whose packs must contain a DFC.
func (m Mode) guaranteesDoubleFaced() bool {
	return m == ModeModalDFC || m == ModeTransformDFC
}

// landSlotCount is the number of cards the land slot deals for this mode.
func (m Mode) landSlotCount() int {
	switch m {
	case ModeNoBasics, ModeDoubleRare:
		return 0
	case ModeTwoBasics:
		return 2
	default:
		return 1
	}
}
