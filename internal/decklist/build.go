package decklist

import (
	"context"
	"fmt"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/scryfall"
)

// Resolver is the slice of the card client the builder needs: the batch
// collection lookup.
type Resolver interface {
	Collection(ctx context.Context, ids []scryfall.Identifier) ([]models.Card, []scryfall.Identifier, error)
}

// Deck is a resolved list: expanded selections per section, in list order.
type Deck struct {
	Sections map[string][]models.CardSelection
	Order    []string
}

// Build resolves every entry through one batched collection lookup and
// expands the counts. Any miss is fatal with NoCardFound naming the first
// missing identifier; a deck either fully resolves or fails.
func Build(ctx context.Context, r Resolver, list *Decklist) (*Deck, error) {
	if list == nil || len(list.Sections) == 0 {
		return nil, models.ErrEmptyInput
	}

	var ids []scryfall.Identifier
	for _, section := range list.Sections {
		for _, e := range section.Entries {
			ids = append(ids, identifierFor(e))
		}
	}

	found, missed, err := r.Collection(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve deck list: %w", err)
	}
	if len(missed) > 0 {
		return nil, &models.NoCardFoundError{Identifier: missed[0].String()}
	}

	byKey := map[string]models.Card{}
	for _, c := range found {
		byKey[keyName(c.Name)] = c
		byKey[keyPrinting(c.SetCode, c.CollectorNumber)] = c
	}

	deck := &Deck{Sections: map[string][]models.CardSelection{}}
	for _, section := range list.Sections {
		for _, e := range section.Entries {
			card, ok := lookupEntry(byKey, e)
			if !ok {
				return nil, &models.NoCardFoundError{Identifier: identifierFor(e).String()}
			}
			for i := 0; i < e.Count; i++ {
				deck.Sections[section.Name] = append(deck.Sections[section.Name],
					models.CardSelection{Card: card})
			}
		}
		if _, seen := deck.Sections[section.Name]; seen && !contains(deck.Order, section.Name) {
			deck.Order = append(deck.Order, section.Name)
		}
	}
	return deck, nil
}

func identifierFor(e Entry) scryfall.Identifier {
	if e.Set != "" && e.CollectorNumber != "" {
		return scryfall.Identifier{Set: e.Set, CollectorNumber: e.CollectorNumber}
	}
	if e.Set != "" {
		return scryfall.Identifier{Name: e.Name, Set: e.Set}
	}
	return scryfall.Identifier{Name: e.Name}
}

func lookupEntry(byKey map[string]models.Card, e Entry) (models.Card, bool) {
	if e.Set != "" && e.CollectorNumber != "" {
		if c, ok := byKey[keyPrinting(e.Set, e.CollectorNumber)]; ok {
			return c, true
		}
	}
	c, ok := byKey[keyName(e.Name)]
	return c, ok
}

func keyName(name string) string {
	return "n:" + normalizeName(name)
}

func keyPrinting(set, number string) string {
	return "p:" + set + "/" + number
}

// normalizeName folds the split-card separator so "Fire // Ice" and
// "Fire//Ice" hit the same entry.
func normalizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
