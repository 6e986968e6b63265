package models

// CardSelection is one pack position: a printing plus its finish.
type CardSelection struct {
	Card Card `json:"card"`
	Foil bool `json:"foil"`
}

// Pack is an ordered run of selections plus the tokens resolved for them.
// Order only matters for presentation (front of pack first); it is mutable
// during assembly and treated as immutable once validated.
type Pack struct {
	SetCode string          `json:"set"`
	Cards   []CardSelection `json:"cards"`
	Tokens  []CardSelection `json:"tokens,omitempty"`
}

// Add appends a non-foil selection.
func (p *Pack) Add(c Card) {
	p.Cards = append(p.Cards, CardSelection{Card: c})
}

// AddFoil appends a foil selection.
func (p *Pack) AddFoil(c Card) {
	p.Cards = append(p.Cards, CardSelection{Card: c, Foil: true})
}

// Size counts every physical card in the pack, tokens included.
func (p *Pack) Size() int {
	return len(p.Cards) + len(p.Tokens)
}

// UniqueNameCount counts distinct card names across cards and tokens.
func (p *Pack) UniqueNameCount() int {
	seen := make(map[string]struct{}, len(p.Cards)+len(p.Tokens))
	for _, sel := range p.Cards {
		seen[sel.Card.Name] = struct{}{}
	}
	for _, sel := range p.Tokens {
		seen[sel.Card.Name] = struct{}{}
	}
	return len(seen)
}

// ContainsName reports whether any main-deck selection has the given name.
func (p *Pack) ContainsName(name string) bool {
	for _, sel := range p.Cards {
		if sel.Card.Name == name {
			return true
		}
	}
	return false
}

// ColorUnion is the set of colors across non-land selections. Lands are
// excluded so a land-heavy draw cannot fake coverage.
func (p *Pack) ColorUnion() map[string]bool {
	union := map[string]bool{}
	for _, sel := range p.Cards {
		if sel.Card.IsLand() {
			continue
		}
		for _, col := range sel.Card.Colors {
			union[col] = true
		}
	}
	return union
}

// CountBy tallies main-deck selections matching the predicate.
func (p *Pack) CountBy(match func(Card) bool) int {
	n := 0
	for _, sel := range p.Cards {
		if match(sel.Card) {
			n++
		}
	}
	return n
}
