package scryfall

import (
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// cardJSON is the wire shape of one card object, narrowed to the fields the
// engine uses.
type cardJSON struct {
	ID              string     `json:"id"`
	OracleID        string     `json:"oracle_id"`
	Name            string     `json:"name"`
	FlavorName      string     `json:"flavor_name"`
	Set             string     `json:"set"`
	CollectorNumber string     `json:"collector_number"`
	Rarity          string     `json:"rarity"`
	Colors          []string   `json:"colors"`
	ColorIdentity   []string   `json:"color_identity"`
	TypeLine        string     `json:"type_line"`
	OracleText      string     `json:"oracle_text"`
	Layout          string     `json:"layout"`
	Frame           string     `json:"frame"`
	FrameEffects    []string   `json:"frame_effects"`
	BorderColor     string     `json:"border_color"`
	SecurityStamp   string     `json:"security_stamp"`
	Foil            bool       `json:"foil"`
	Nonfoil         bool       `json:"nonfoil"`
	Promo           bool       `json:"promo"`
	Booster         bool       `json:"booster"`
	Lang            string     `json:"lang"`
	ReleasedAt      string     `json:"released_at"`
	ImageURIs       imageURIs  `json:"image_uris"`
	CardFaces       []faceJSON `json:"card_faces"`
	AllParts        []partJSON `json:"all_parts"`
}

type imageURIs struct {
	Normal string `json:"normal"`
	Large  string `json:"large"`
	PNG    string `json:"png"`
}

func (im imageURIs) best() string {
	if im.Large != "" {
		return im.Large
	}
	if im.Normal != "" {
		return im.Normal
	}
	return im.PNG
}

type faceJSON struct {
	Name       string    `json:"name"`
	TypeLine   string    `json:"type_line"`
	OracleText string    `json:"oracle_text"`
	Colors     []string  `json:"colors"`
	ImageURIs  imageURIs `json:"image_uris"`
}

type partJSON struct {
	ID        string `json:"id"`
	Component string `json:"component"`
	Name      string `json:"name"`
	TypeLine  string `json:"type_line"`
}

func (cj cardJSON) toModel() (models.Card, error) {
	rarity, err := models.ParseRarity(cj.Rarity)
	if err != nil {
		return models.Card{}, err
	}

	card := models.Card{
		ID:              cj.ID,
		OracleID:        cj.OracleID,
		Name:            cj.Name,
		FlavorName:      cj.FlavorName,
		SetCode:         cj.Set,
		CollectorNumber: cj.CollectorNumber,
		Rarity:          rarity,
		Colors:          cj.Colors,
		ColorIdentity:   cj.ColorIdentity,
		TypeLine:        cj.TypeLine,
		OracleText:      cj.OracleText,
		Layout:          cj.Layout,
		Frame:           cj.Frame,
		FrameEffects:    cj.FrameEffects,
		BorderColor:     cj.BorderColor,
		SecurityStamp:   cj.SecurityStamp,
		Foil:            cj.Foil,
		Nonfoil:         cj.Nonfoil,
		Promo:           cj.Promo,
		Booster:         cj.Booster,
		Lang:            cj.Lang,
		ReleasedAt:      cj.ReleasedAt,
		ImageURI:        cj.ImageURIs.best(),
	}

	for _, face := range cj.CardFaces {
		card.Faces = append(card.Faces, models.CardFace{
			Name:       face.Name,
			TypeLine:   face.TypeLine,
			OracleText: face.OracleText,
			ImageURI:   face.ImageURIs.best(),
		})
	}
	// Multi-faced printings keep their front image on the card and the back
	// on the second face; colors and text aggregate from the faces when the
	// top level omits them.
	if len(card.Faces) > 0 {
		if card.ImageURI == "" {
			card.ImageURI = card.Faces[0].ImageURI
		}
		if len(card.Faces) > 1 {
			card.BackImageURI = card.Faces[1].ImageURI
		}
		if card.OracleText == "" {
			card.OracleText = joinFaceText(card.Faces)
		}
		if len(card.Colors) == 0 {
			card.Colors = unionFaceColors(cj.CardFaces)
		}
	}

	for _, part := range cj.AllParts {
		card.AllParts = append(card.AllParts, models.RelatedCard{
			ID:        part.ID,
			Component: part.Component,
			Name:      part.Name,
			TypeLine:  part.TypeLine,
		})
	}
	return card, nil
}

func joinFaceText(faces []models.CardFace) string {
	out := ""
	for i, f := range faces {
		if i > 0 {
			out += "\n//\n"
		}
		out += f.OracleText
	}
	return out
}

func unionFaceColors(faces []faceJSON) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range faces {
		for _, col := range f.Colors {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	return out
}
