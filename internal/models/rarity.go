package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rarity is ordered: Common < Uncommon < Rare < Mythic.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Mythic
)

// Rarities lists all rarities in ascending order.
var Rarities = []Rarity{Common, Uncommon, Rare, Mythic}

func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Mythic:
		return "mythic"
	default:
		return fmt.Sprintf("rarity(%d)", int(r))
	}
}

// ParseRarity maps API rarity strings onto the ordered enum. "special" and
// "bonus" printings ride along with rare; they only appear in dedicated slots.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return Common, nil
	case "uncommon":
		return Uncommon, nil
	case "rare", "special", "bonus":
		return Rare, nil
	case "mythic":
		return Mythic, nil
	default:
		return Common, fmt.Errorf("unknown rarity %q", s)
	}
}

func (r Rarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rarity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRarity(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
