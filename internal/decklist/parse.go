// Package decklist parses Arena/MTGO-style deck lists and resolves them into
// card selections through the card source.
package decklist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// Entry is one parsed line: an identifier plus how many copies it asks for.
type Entry struct {
	Name            string `json:"name"`
	Set             string `json:"set,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
	Count           int    `json:"count"`
}

// Section is one named card group. Arena exports name them Deck, Sideboard,
// Commander, Companion; MTGO exports separate main from sideboard with a
// blank line.
type Section struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Decklist is the parsed form of one submitted list.
type Decklist struct {
	Sections []Section `json:"sections"`
}

// Cards totals the requested copies across all sections.
func (d *Decklist) Cards() int {
	n := 0
	for _, s := range d.Sections {
		for _, e := range s.Entries {
			n += e.Count
		}
	}
	return n
}

var sectionHeaders = map[string]string{
	"deck":      "Deck",
	"main":      "Deck",
	"maindeck":  "Deck",
	"mainboard": "Deck",
	"sideboard": "Sideboard",
	"side":      "Sideboard",
	"commander": "Commander",
	"companion": "Companion",
}

// entryLine matches "4 Lightning Bolt", "4x Lightning Bolt",
// "4 Lightning Bolt (2X2) 117", and the same without a count.
var entryLine = regexp.MustCompile(`^(?:(\d+)x?\s+)?(.+?)(?:\s+\(([0-9A-Za-z]{2,6})\)(?:\s+([0-9A-Za-z★†]+))?)?$`)

// Parse reads a deck-list text into named sections. Lines it cannot read are
// skipped; a list yielding no entries at all is ErrEmptyInput.
func Parse(text string) (*Decklist, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrEmptyInput
	}

	deck := &Decklist{}
	current := &Section{Name: "Deck"}
	sawBlank := false

	flush := func() {
		if len(current.Entries) > 0 {
			deck.Sections = append(deck.Sections, *current)
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			sawBlank = len(current.Entries) > 0
			continue
		}
		if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}

		if name, ok := sectionHeaders[strings.ToLower(strings.TrimSuffix(line, ":"))]; ok {
			flush()
			current = &Section{Name: name}
			sawBlank = false
			continue
		}
		if sawBlank {
			// MTGO convention: a blank line after the main deck starts the
			// sideboard.
			flush()
			current = &Section{Name: "Sideboard"}
			sawBlank = false
		}

		entry, ok := parseEntry(line)
		if !ok {
			continue
		}
		current.Entries = append(current.Entries, entry)
	}
	flush()

	if len(deck.Sections) == 0 {
		return nil, models.ErrEmptyInput
	}
	return deck, nil
}

func parseEntry(line string) (Entry, bool) {
	m := entryLine.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[2]) == "" {
		return Entry{}, false
	}
	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return Entry{}, false
		}
		count = n
	}
	return Entry{
		Name:            strings.TrimSpace(m[2]),
		Set:             strings.ToLower(m[3]),
		CollectorNumber: m[4],
		Count:           count,
	}, true
}
