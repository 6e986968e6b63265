package models

import (
	"strings"
)

// Colors in WUBRG order.
const (
	White = "W"
	Blue  = "U"
	Black = "B"
	Red   = "R"
	Green = "G"
)

// AllColors is every primary color in WUBRG order.
var AllColors = []string{White, Blue, Black, Red, Green}

// RelatedCard links a card to another printing it references: its tokens,
// the meld result it forms, or the specific partner it pairs with.
type RelatedCard struct {
	ID        string `json:"id"`
	Component string `json:"component"` // token|meld_part|meld_result|combo_piece
	Name      string `json:"name"`
	TypeLine  string `json:"type_line,omitempty"`
}

// CardFace is one face of a multi-faced printing. Single-faced cards carry
// their image on the Card itself and have no faces.
type CardFace struct {
	Name      string `json:"name"`
	TypeLine  string `json:"type_line,omitempty"`
	OracleText string `json:"oracle_text,omitempty"`
	ImageURI  string `json:"image_uri,omitempty"`
}

// Card is one printing fetched from the card source. Identity fields are
// read-only after fetch; display tweaks go through Renamed copies.
type Card struct {
	ID              string        `json:"id"`
	OracleID        string        `json:"oracle_id"`
	Name            string        `json:"name"`
	FlavorName      string        `json:"flavor_name,omitempty"`
	SetCode         string        `json:"set"`
	CollectorNumber string        `json:"collector_number"`
	Rarity          Rarity        `json:"rarity"`
	Colors          []string      `json:"colors,omitempty"`
	ColorIdentity   []string      `json:"color_identity,omitempty"`
	TypeLine        string        `json:"type_line"`
	OracleText      string        `json:"oracle_text,omitempty"`
	Layout          string        `json:"layout"`
	Frame           string        `json:"frame,omitempty"`
	FrameEffects    []string      `json:"frame_effects,omitempty"`
	BorderColor     string        `json:"border_color,omitempty"`
	SecurityStamp   string        `json:"security_stamp,omitempty"`
	Foil            bool          `json:"foil"`
	Nonfoil         bool          `json:"nonfoil"`
	Promo           bool          `json:"promo"`
	Booster         bool          `json:"booster"`
	Lang            string        `json:"lang,omitempty"`
	ReleasedAt      string        `json:"released_at,omitempty"`
	ImageURI        string        `json:"image_uri,omitempty"`
	BackImageURI    string        `json:"back_image_uri,omitempty"`
	Faces           []CardFace    `json:"card_faces,omitempty"`
	AllParts        []RelatedCard `json:"all_parts,omitempty"`
}

// Renamed returns a copy presented under a different display name. The
// original identity fields are untouched.
func (c Card) Renamed(name string) Card {
	c.FlavorName = c.Name
	c.Name = name
	return c
}

// DisplayName prefers the flavor name when a reprint carries one.
func (c Card) DisplayName() string {
	if c.FlavorName != "" {
		return c.FlavorName
	}
	return c.Name
}

func (c Card) IsLand() bool {
	return typeLineHas(c.TypeLine, "Land")
}

func (c Card) IsBasicLand() bool {
	return strings.HasPrefix(c.TypeLine, "Basic")
}

func (c Card) IsCreature() bool {
	return typeLineHas(c.TypeLine, "Creature")
}

func (c Card) IsLegendary() bool {
	return strings.HasPrefix(c.TypeLine, "Legendary")
}

func (c Card) IsLegendaryCreature() bool {
	return c.IsLegendary() && c.IsCreature()
}

func (c Card) IsPlaneswalker() bool {
	return typeLineHas(c.TypeLine, "Planeswalker")
}

// IsToken covers token and emblem layouts, which live in the token pool.
func (c Card) IsToken() bool {
	switch c.Layout {
	case "token", "double_faced_token", "emblem":
		return true
	}
	return false
}

// IsDoubleFaced reports layouts with a distinct back face.
func (c Card) IsDoubleFaced() bool {
	switch c.Layout {
	case "transform", "modal_dfc", "meld", "double_faced_token":
		return true
	}
	return false
}

func (c Card) IsModalDoubleFaced() bool {
	return c.Layout == "modal_dfc"
}

func (c Card) HasFrameEffect(effect string) bool {
	for _, fe := range c.FrameEffects {
		if fe == effect {
			return true
		}
	}
	return false
}

func (c Card) IsShowcase() bool {
	return c.HasFrameEffect("showcase")
}

func (c Card) IsExtendedArt() bool {
	return c.HasFrameEffect("extendedart")
}

func (c Card) IsBorderless() bool {
	return c.BorderColor == "borderless"
}

func (c Card) IsColorshifted() bool {
	return c.HasFrameEffect("colorshifted")
}

func (c Card) IsEtched() bool {
	return c.HasFrameEffect("etched")
}

// IsFutureFrame reports the futureshifted frame.
func (c Card) IsFutureFrame() bool {
	return c.Frame == "future"
}

// IsRetroFrame reports the pre-8th-edition frame.
func (c Card) IsRetroFrame() bool {
	return c.Frame == "1993" || c.Frame == "1997"
}

// HasPartnerWith reports whether the rules text names a specific partner.
// Generic "Partner" (pair with anyone) does not count.
func (c Card) HasPartnerWith() bool {
	return strings.Contains(c.oracleAllFaces(), "Partner with ")
}

// PartnerName extracts the linked partner's name from the rules text, or ""
// when the card has no named partner.
func (c Card) PartnerName() string {
	text := c.oracleAllFaces()
	idx := strings.Index(text, "Partner with ")
	if idx < 0 {
		return ""
	}
	rest := text[idx+len("Partner with "):]
	// The name runs to the end of the line, stopping at reminder text or
	// the ability separator.
	for _, stop := range []string{" (", "\n"} {
		if cut := strings.Index(rest, stop); cut >= 0 {
			rest = rest[:cut]
		}
	}
	return strings.TrimSpace(rest)
}

// PartnerPart returns the combo_piece link for a named partner, if present.
func (c Card) PartnerPart() *RelatedCard {
	for i := range c.AllParts {
		part := c.AllParts[i]
		if part.Component == "combo_piece" && part.Name != c.Name {
			return &c.AllParts[i]
		}
	}
	return nil
}

// TokenParts lists related token and emblem printings.
func (c Card) TokenParts() []RelatedCard {
	var parts []RelatedCard
	for _, part := range c.AllParts {
		if part.Component == "token" || strings.Contains(part.TypeLine, "Emblem") {
			parts = append(parts, part)
		}
	}
	return parts
}

// MeldResultPart returns the meld_result link, if any.
func (c Card) MeldResultPart() *RelatedCard {
	for i := range c.AllParts {
		if c.AllParts[i].Component == "meld_result" {
			return &c.AllParts[i]
		}
	}
	return nil
}

// oracleAllFaces concatenates rules text across the card and its faces so
// partner detection works on double-faced printings.
func (c Card) oracleAllFaces() string {
	var b strings.Builder
	b.WriteString(c.OracleText)
	for _, f := range c.Faces {
		b.WriteByte('\n')
		b.WriteString(f.OracleText)
	}
	return b.String()
}

// typeLineHas matches a card type on either face of the type line without
// matching substrings of other words.
func typeLineHas(typeLine, cardType string) bool {
	for _, face := range strings.Split(typeLine, "//") {
		for _, word := range strings.Fields(face) {
			if word == cardType {
				return true
			}
		}
	}
	return false
}
