package booster

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed sets.toml
var rulesTOML []byte

// SetRules is the resolved slot model for one release. Values are copied by
// the generator; nothing here mutates after load.
type SetRules struct {
	Code          string
	Mode          Mode
	Foil          FoilPolicy
	Mythic        MythicPolicy
	TargetSize    int // physical cards per pack when every pool is stocked
	UncommonCount int
	HasTokens     bool

	ShowcaseOneIn      int // 0 disables the showcase swap
	ShowcaseGuaranteed bool

	MasterpieceOneIn int
	MasterpieceSet   string

	BorderlessFoilOneIn   int
	BorderlessWalkerOneIn int

	// BonusSheetSet feeds the custom slot for ModeBonusSheet/ModeTimeshifted.
	BonusSheetSet string
	// LandSet borrows the basic-land slot from a sibling release.
	LandSet string

	PacksPerBox int

	// Special routes the release to a dedicated generator instead of the
	// default assembler: "legends", "mystery" or "colorshift".
	Special string
}

// LandCount is how many cards the land slot deals.
func (r SetRules) LandCount() int { return r.Mode.landSlotCount() }

// ruleEntry mirrors one [sets.*] table in sets.toml. Zero fields fall back
// to the era defaults.
type ruleEntry struct {
	Mode                  string `toml:"mode"`
	Foil                  string `toml:"foil"`
	Mythic                string `toml:"mythic"`
	TargetSize            int    `toml:"target_size"`
	Uncommons             int    `toml:"uncommons"`
	Tokens                *bool  `toml:"tokens"`
	ShowcaseOneIn         int    `toml:"showcase_one_in"`
	ShowcaseGuaranteed    bool   `toml:"showcase_guaranteed"`
	MasterpieceOneIn      int    `toml:"masterpiece_one_in"`
	MasterpieceSet        string `toml:"masterpiece_set"`
	BorderlessFoilOneIn   int    `toml:"borderless_foil_one_in"`
	BorderlessWalkerOneIn int    `toml:"borderless_walker_one_in"`
	BonusSheetSet         string `toml:"bonus_sheet_set"`
	LandSet               string `toml:"land_set"`
	PacksPerBox           int    `toml:"packs_per_box"`
	Special               string `toml:"special"`
}

type ruleFile struct {
	Sets map[string]ruleEntry `toml:"sets"`
}

var (
	rulesOnce sync.Once
	ruleTable map[string]ruleEntry
	rulesErr  error
)

func loadRuleTable() (map[string]ruleEntry, error) {
	rulesOnce.Do(func() {
		var f ruleFile
		if err := toml.Unmarshal(rulesTOML, &f); err != nil {
			rulesErr = fmt.Errorf("parse set rules: %w", err)
			return
		}
		ruleTable = f.Sets
	})
	return ruleTable, rulesErr
}

// RulesFor resolves the slot model for a release. releasedAt ("YYYY-MM-DD",
// may be empty) drives the era defaults for sets with no table entry.
func RulesFor(setCode, releasedAt string) (SetRules, error) {
	table, err := loadRuleTable()
	if err != nil {
		return SetRules{}, err
	}

	rules := defaultRules(setCode, releasedAt)
	entry, ok := table[setCode]
	if !ok {
		return rules, nil
	}

	if entry.Mode != "" {
		mode, err := ParseMode(entry.Mode)
		if err != nil {
			return SetRules{}, fmt.Errorf("set %s: %w", setCode, err)
		}
		rules.Mode = mode
	}
	switch entry.Foil {
	case "":
	case "none":
		rules.Foil = 0
	case "legacy":
		rules.Foil = FoilLegacy
	case "modern":
		rules.Foil = FoilModern
	case "guaranteed":
		rules.Foil = FoilGuaranteed
	default:
		return SetRules{}, fmt.Errorf("set %s: unknown foil policy %q", setCode, entry.Foil)
	}
	switch entry.Mythic {
	case "":
	case "none":
		rules.Mythic = MythicNone
	case "eighth":
		rules.Mythic = MythicEighth
	case "percentile":
		rules.Mythic = MythicPercentile
	default:
		return SetRules{}, fmt.Errorf("set %s: unknown mythic policy %q", setCode, entry.Mythic)
	}
	if entry.TargetSize > 0 {
		rules.TargetSize = entry.TargetSize
	}
	if entry.Uncommons > 0 {
		rules.UncommonCount = entry.Uncommons
	}
	if entry.Tokens != nil {
		rules.HasTokens = *entry.Tokens
	}
	if entry.ShowcaseOneIn > 0 {
		rules.ShowcaseOneIn = entry.ShowcaseOneIn
	}
	rules.ShowcaseGuaranteed = entry.ShowcaseGuaranteed
	if entry.MasterpieceOneIn > 0 {
		rules.MasterpieceOneIn = entry.MasterpieceOneIn
		rules.MasterpieceSet = entry.MasterpieceSet
	}
	if entry.BorderlessFoilOneIn > 0 {
		rules.BorderlessFoilOneIn = entry.BorderlessFoilOneIn
	}
	if entry.BorderlessWalkerOneIn > 0 {
		rules.BorderlessWalkerOneIn = entry.BorderlessWalkerOneIn
	}
	if entry.BonusSheetSet != "" {
		rules.BonusSheetSet = entry.BonusSheetSet
	}
	if entry.LandSet != "" {
		rules.LandSet = entry.LandSet
	}
	if entry.PacksPerBox > 0 {
		rules.PacksPerBox = entry.PacksPerBox
	}
	rules.Special = entry.Special

	return rules, nil
}

// Era cutoffs, compared lexically against YYYY-MM-DD release dates.
const (
	firstFoilDate   = "1999-02-01" // Urza's Legacy
	firstMythicDate = "2008-10-01" // Shards of Alara
	firstTokenDate  = "2008-10-01"
	firstLandDate   = "2009-07-01" // Magic 2010
	modernFoilDate  = "2020-01-01"
	percentileDate  = "2020-09-01" // Zendikar Rising
)

// defaultRules derives a slot model for sets absent from the table.
func defaultRules(setCode, releasedAt string) SetRules {
	rules := SetRules{
		Code:          setCode,
		Mode:          ModeDefault,
		Foil:          FoilModern,
		Mythic:        MythicPercentile,
		TargetSize:    16,
		UncommonCount: 3,
		HasTokens:     true,
		ShowcaseOneIn: 0,
		PacksPerBox:   36,
	}
	if releasedAt == "" {
		return rules
	}
	if releasedAt < firstFoilDate {
		rules.Foil = 0
	} else if releasedAt < modernFoilDate {
		rules.Foil = FoilLegacy
	}
	if releasedAt < firstMythicDate {
		rules.Mythic = MythicNone
	} else if releasedAt < percentileDate {
		rules.Mythic = MythicEighth
	}
	if releasedAt < firstTokenDate {
		rules.HasTokens = false
	}
	if releasedAt < firstLandDate {
		rules.Mode = ModeNoBasics
		rules.TargetSize = 15
	}
	return rules
}
