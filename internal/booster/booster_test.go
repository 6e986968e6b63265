package booster

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// scripted replays a fixed roll sequence, wrapping around; each value is
// reduced mod n so tests can think in raw rolls.
type scripted struct {
	rolls []int
	i     int
}

func (s *scripted) Intn(n int) int {
	v := s.rolls[s.i%len(s.rolls)]
	s.i++
	return v % n
}

// testRand is a deterministic real source for tests that only care about
// aggregate behavior.
func testRand() Source {
	return rand.New(rand.NewSource(7))
}

var testColors = []string{models.White, models.Blue, models.Black, models.Red, models.Green}

type cardSpec struct {
	name   string
	rarity models.Rarity
	color  string
	tweak  func(*models.Card)
}

func makeCard(spec cardSpec) models.Card {
	c := models.Card{
		ID:       "id-" + spec.name,
		OracleID: "oracle-" + spec.name,
		Name:     spec.name,
		SetCode:  "tst",
		Rarity:   spec.rarity,
		TypeLine: "Creature — Test",
		Layout:   "normal",
		Booster:  true,
		Nonfoil:  true,
		Foil:     true,
		Lang:     "en",
	}
	if spec.color != "" {
		c.Colors = []string{spec.color}
		c.ColorIdentity = []string{spec.color}
	}
	if spec.tweak != nil {
		spec.tweak(&c)
	}
	return c
}

// syntheticSet builds the baseline five-color pool from the acceptance example:
// 10 commons and 3 uncommons per color, one rare and one mythic per color,
// one basic land per color, and one token.
func syntheticSet() []models.Card {
	var cards []models.Card
	landNames := map[string]string{
		models.White: "Plains", models.Blue: "Island", models.Black: "Swamp",
		models.Red: "Mountain", models.Green: "Forest",
	}
	for _, col := range testColors {
		for i := 0; i < 10; i++ {
			cards = append(cards, makeCard(cardSpec{
				name: fmt.Sprintf("Common %s %d", col, i), rarity: models.Common, color: col,
			}))
		}
		for i := 0; i < 3; i++ {
			cards = append(cards, makeCard(cardSpec{
				name: fmt.Sprintf("Uncommon %s %d", col, i), rarity: models.Uncommon, color: col,
			}))
		}
		cards = append(cards, makeCard(cardSpec{
			name: "Rare " + col, rarity: models.Rare, color: col,
		}))
		cards = append(cards, makeCard(cardSpec{
			name: "Mythic " + col, rarity: models.Mythic, color: col,
		}))
		cards = append(cards, makeCard(cardSpec{
			name: landNames[col], rarity: models.Common,
			tweak: func(c *models.Card) { c.TypeLine = "Basic Land" },
		}))
	}
	cards = append(cards, makeCard(cardSpec{
		name: "Soldier", rarity: models.Common,
		tweak: func(c *models.Card) {
			c.Layout = "token"
			c.TypeLine = "Token Creature — Soldier"
		},
	}))
	return cards
}

// baselineRules is the synthetic release: 16-card target, no foil slot so
// slot composition is exact.
func baselineRules() SetRules {
	return SetRules{
		Code:          "tst",
		Mode:          ModeDefault,
		Foil:          0,
		Mythic:        MythicEighth,
		TargetSize:    16,
		UncommonCount: 3,
		HasTokens:     true,
		PacksPerBox:   36,
	}
}

// fakeSource serves canned card lists per set code.
type fakeSource struct {
	sets  map[string][]models.Card
	calls map[string]int
	err   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{sets: map[string][]models.Card{}, calls: map[string]int{}}
}

func (f *fakeSource) SetCards(ctx context.Context, setCode string) ([]models.Card, error) {
	f.calls[setCode]++
	if f.err != nil {
		return nil, f.err
	}
	return f.sets[setCode], nil
}
