package booster

import (
	"strings"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// resolveToken picks at most one token for a validated pack. Relevance is
// judged by three heuristics in turn: related-card links on the pack's cards,
// token names quoted in rules text, and emblems named after a planeswalker in
// the pack. When nothing matches, any token from the pool will do; every
// historical pack shipped one.
func resolveToken(rng Source, pack *models.Pack, tokens []models.Card) {
	if len(tokens) == 0 {
		return
	}
	relevant := relevantTokens(pack, tokens)
	if len(relevant) == 0 {
		relevant = tokens
	}
	pack.Tokens = append(pack.Tokens, models.CardSelection{Card: pick(rng, relevant)})
}

func relevantTokens(pack *models.Pack, tokens []models.Card) []models.Card {
	wantIDs := map[string]bool{}
	wantNames := map[string]bool{}
	var oracle strings.Builder
	for _, sel := range pack.Cards {
		for _, part := range sel.Card.TokenParts() {
			wantIDs[part.ID] = true
			wantNames[part.Name] = true
		}
		oracle.WriteString(sel.Card.OracleText)
		oracle.WriteByte('\n')
		if sel.Card.IsPlaneswalker() {
			// Emblems are named "<Walker Name> Emblem".
			wantNames[sel.Card.Name+" Emblem"] = true
		}
	}
	text := oracle.String()

	var out []models.Card
	for _, tok := range tokens {
		switch {
		case wantIDs[tok.ID] || wantNames[tok.Name]:
			out = append(out, tok)
		case tok.Name != "" && tokenNamedInText(text, tok.Name):
			out = append(out, tok)
		}
	}
	return out
}

// tokenNamedInText reports whether rules text names the token, allowing the
// type words oracle text places between the name and "token", as in
// "a 1/1 colorless Thopter artifact creature token".
func tokenNamedInText(text, name string) bool {
	for idx := strings.Index(text, name); idx >= 0; {
		rest := text[idx+len(name):]
		rest = strings.TrimPrefix(rest, " artifact")
		rest = strings.TrimPrefix(rest, " enchantment")
		rest = strings.TrimPrefix(rest, " creature")
		if strings.HasPrefix(rest, " token") {
			return true
		}
		next := strings.Index(text[idx+len(name):], name)
		if next < 0 {
			return false
		}
		idx += len(name) + next
	}
	return false
}

// attachMeldResults rides the combined meld face along with any pack that
// contains one of its halves, so the table can flip into it.
func attachMeldResults(pack *models.Pack, results []models.Card) {
	if len(results) == 0 {
		return
	}
	for _, sel := range pack.Cards {
		part := sel.Card.MeldResultPart()
		if part == nil {
			continue
		}
		for _, r := range results {
			if (r.ID == part.ID || r.Name == part.Name) && !tokenListed(pack, r.Name) {
				pack.Tokens = append(pack.Tokens, models.CardSelection{Card: r})
			}
		}
	}
}

func tokenListed(pack *models.Pack, name string) bool {
	for _, sel := range pack.Tokens {
		if sel.Card.Name == name {
			return true
		}
	}
	return false
}
