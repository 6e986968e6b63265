package booster

import (
	"math/rand"
	"time"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// Source yields uniform random ints in [0,n). *math/rand.Rand satisfies it;
// tests inject scripted sources. Generation never needs crypto-quality
// randomness and no seeding contract is exposed to callers.
type Source interface {
	Intn(n int) int
}

// NewSource returns a time-seeded source for one generation request.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// pick returns a uniformly chosen card from cards. Callers must not pass an
// empty slice.
func pick(rng Source, cards []models.Card) models.Card {
	return cards[rng.Intn(len(cards))]
}

// oneIn rolls a 1-in-n chance. n <= 0 never hits.
func oneIn(rng Source, n int) bool {
	if n <= 0 {
		return false
	}
	return rng.Intn(n) == 0
}
