package models

// RarityBuckets groups cards of one slot category by rarity.
type RarityBuckets map[Rarity][]Card

func (b RarityBuckets) Add(c Card) {
	b[c.Rarity] = append(b[c.Rarity], c)
}

// Count totals cards across all rarities.
func (b RarityBuckets) Count() int {
	n := 0
	for _, cards := range b {
		n += len(cards)
	}
	return n
}

// Has reports whether the bucket for r is non-empty.
func (b RarityBuckets) Has(r Rarity) bool {
	return len(b[r]) > 0
}

// All flattens every bucket in ascending rarity order.
func (b RarityBuckets) All() []Card {
	var out []Card
	for _, r := range Rarities {
		out = append(out, b[r]...)
	}
	return out
}

// Colors is the color union across all bucketed cards.
func (b RarityBuckets) Colors() map[string]bool {
	union := map[string]bool{}
	for _, cards := range b {
		for _, c := range cards {
			for _, col := range c.Colors {
				union[col] = true
			}
		}
	}
	return union
}

// CardPool is every slot category for one generation request. Built fresh per
// request and owned by it; nothing here is shared.
type CardPool struct {
	SetCode string

	Main        RarityBuckets
	Showcase    RarityBuckets
	ExtendedArt RarityBuckets
	CustomSlot  RarityBuckets
	BasicLands  RarityBuckets
	Masterpiece []Card
	Tokens      []Card
	MeldResults []Card
}

// NewCardPool returns a pool with every bucket map initialized.
func NewCardPool(setCode string) *CardPool {
	return &CardPool{
		SetCode:     setCode,
		Main:        RarityBuckets{},
		Showcase:    RarityBuckets{},
		ExtendedArt: RarityBuckets{},
		CustomSlot:  RarityBuckets{},
		BasicLands:  RarityBuckets{},
	}
}

// HasAllColors reports whether the main pool spans all five colors.
func (p *CardPool) HasAllColors() bool {
	union := p.Main.Colors()
	for _, col := range AllColors {
		if !union[col] {
			return false
		}
	}
	return true
}
