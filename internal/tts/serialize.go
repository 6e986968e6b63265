// Package tts renders finished packs and decks as Tabletop Simulator saved
// objects, ready to drop into a Saves/Saved Objects directory.
package tts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/assets"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// DefaultCardBack is the standard sleeve image used when a card has no back
// face of its own.
const DefaultCardBack = "https://i.imgur.com/Hg8CwwU.jpeg"

// SavedObject is the top-level shape Tabletop Simulator loads.
type SavedObject struct {
	ObjectStates []Object `json:"ObjectStates"`
}

// Object covers the three shapes we emit: Bag, DeckCustom, and Card.
type Object struct {
	Name             string              `json:"Name"`
	GUID             string              `json:"GUID,omitempty"`
	Nickname         string              `json:"Nickname,omitempty"`
	Description      string              `json:"Description,omitempty"`
	Transform        Transform           `json:"Transform"`
	DeckIDs          []int               `json:"DeckIDs,omitempty"`
	CustomDeck       map[string]DeckPart `json:"CustomDeck,omitempty"`
	CardID           int                 `json:"CardID,omitempty"`
	ContainedObjects []Object            `json:"ContainedObjects,omitempty"`
}

// Transform places the object on the table. Decks spawn face down.
type Transform struct {
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
	PosZ   float64 `json:"posZ"`
	RotX   float64 `json:"rotX"`
	RotY   float64 `json:"rotY"`
	RotZ   float64 `json:"rotZ"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	ScaleZ float64 `json:"scaleZ"`
}

// DeckPart is one CustomDeck image sheet; we emit one per card so every
// printing keeps its own scan.
type DeckPart struct {
	FaceURL      string `json:"FaceURL"`
	BackURL      string `json:"BackURL"`
	NumWidth     int    `json:"NumWidth"`
	NumHeight    int    `json:"NumHeight"`
	BackIsHidden bool   `json:"BackIsHidden"`
	UniqueBack   bool   `json:"UniqueBack"`
}

// Serializer converts packs to saved objects. The prober vets image URLs so
// a bad scan link degrades to the default back instead of a broken object.
type Serializer struct {
	Prober   *assets.Prober
	CardBack string
}

func New(prober *assets.Prober) *Serializer {
	return &Serializer{Prober: prober, CardBack: DefaultCardBack}
}

func (s *Serializer) cardBack() string {
	if s.CardBack != "" {
		return s.CardBack
	}
	return DefaultCardBack
}

// Pack serializes one booster as a face-down deck.
func (s *Serializer) Pack(ctx context.Context, pack *models.Pack) SavedObject {
	deck := s.deckObject(ctx, strings.ToUpper(pack.SetCode)+" booster", packContents(pack))
	return SavedObject{ObjectStates: []Object{deck}}
}

// Packs serializes several boosters as a bag of decks.
func (s *Serializer) Packs(ctx context.Context, nickname string, packs []*models.Pack) SavedObject {
	bag := Object{
		Name:      "Bag",
		GUID:      shortGUID(),
		Nickname:  nickname,
		Transform: defaultTransform(),
	}
	for i, pack := range packs {
		label := fmt.Sprintf("%s booster %d", strings.ToUpper(pack.SetCode), i+1)
		bag.ContainedObjects = append(bag.ContainedObjects, s.deckObject(ctx, label, packContents(pack)))
	}
	return SavedObject{ObjectStates: []Object{bag}}
}

// Deck serializes an arbitrary selection list (deck builder output).
func (s *Serializer) Deck(ctx context.Context, nickname string, cards []models.CardSelection) SavedObject {
	return SavedObject{ObjectStates: []Object{s.deckObject(ctx, nickname, cards)}}
}

func packContents(pack *models.Pack) []models.CardSelection {
	out := make([]models.CardSelection, 0, len(pack.Cards)+len(pack.Tokens))
	out = append(out, pack.Cards...)
	out = append(out, pack.Tokens...)
	return out
}

func (s *Serializer) deckObject(ctx context.Context, nickname string, cards []models.CardSelection) Object {
	deck := Object{
		Name:       "DeckCustom",
		GUID:       shortGUID(),
		Nickname:   nickname,
		Transform:  faceDownTransform(),
		CustomDeck: map[string]DeckPart{},
	}
	for i, sel := range cards {
		sheet := i + 1
		id := sheet * 100
		deck.CustomDeck[fmt.Sprintf("%d", sheet)] = DeckPart{
			FaceURL:      s.faceURL(ctx, sel.Card),
			BackURL:      s.backURL(ctx, sel.Card),
			NumWidth:     1,
			NumHeight:    1,
			BackIsHidden: true,
			UniqueBack:   sel.Card.BackImageURI != "",
		}
		deck.DeckIDs = append(deck.DeckIDs, id)
		deck.ContainedObjects = append(deck.ContainedObjects, Object{
			Name:        "Card",
			GUID:        shortGUID(),
			Nickname:    cardNickname(sel),
			Description: sel.Card.TypeLine,
			Transform:   faceDownTransform(),
			CardID:      id,
		})
	}
	return deck
}

func (s *Serializer) faceURL(ctx context.Context, c models.Card) string {
	if s.Prober == nil || s.Prober.Exists(ctx, c.ImageURI) {
		return c.ImageURI
	}
	return s.cardBack()
}

func (s *Serializer) backURL(ctx context.Context, c models.Card) string {
	if c.BackImageURI != "" && (s.Prober == nil || s.Prober.Exists(ctx, c.BackImageURI)) {
		return c.BackImageURI
	}
	return s.cardBack()
}

func cardNickname(sel models.CardSelection) string {
	name := sel.Card.DisplayName()
	if sel.Foil {
		return name + " (foil)"
	}
	return name
}

// shortGUID derives the 6-hex-character object id TTS expects.
func shortGUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func defaultTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, ScaleZ: 1}
}

func faceDownTransform() Transform {
	return Transform{RotZ: 180, ScaleX: 1, ScaleY: 1, ScaleZ: 1}
}
