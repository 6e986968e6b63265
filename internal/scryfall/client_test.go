package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(nil, nil)
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

func wireCard(name, set, rarity string) map[string]any {
	return map[string]any{
		"id":               "id-" + name,
		"oracle_id":        "oracle-" + name,
		"name":             name,
		"set":              set,
		"collector_number": "1",
		"rarity":           rarity,
		"type_line":        "Creature — Test",
		"layout":           "normal",
		"booster":          true,
		"lang":             "en",
		"image_uris":       map[string]string{"large": "https://img.test/" + name + ".jpg"},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestSetCardsPaginates(t *testing.T) {
	var base string
	mux := http.NewServeMux()
	mux.HandleFunc("/cards/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "set:neo")
		if r.URL.Query().Get("page") == "2" {
			writeJSON(w, http.StatusOK, map[string]any{
				"data":     []any{wireCard("Second Page", "neo", "rare")},
				"has_more": false,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data":      []any{wireCard("First Page", "neo", "common")},
			"has_more":  true,
			"next_page": base + "/cards/search?q=set%3Aneo&page=2",
		})
	})
	c := testClient(t, mux)
	base = c.BaseURL

	cards, err := c.SetCards(context.Background(), "neo")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "First Page", cards[0].Name)
	assert.Equal(t, "Second Page", cards[1].Name)
	assert.Equal(t, models.Rare, cards[1].Rarity)
	assert.Equal(t, "https://img.test/First Page.jpg", cards[0].ImageURI)
}

func TestSetCardsEmptySet(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}, "has_more": false})
	}))
	_, err := c.SetCards(context.Background(), "zzz")
	assert.ErrorIs(t, err, models.ErrNoCards)
}

func TestSetCardsRequiresCode(t *testing.T) {
	c := New(nil, nil)
	_, err := c.SetCards(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

// memCache is an in-memory Cache for exercising the read-through path.
type memCache struct {
	sets map[string][]models.Card
	puts int
}

func (m *memCache) GetSetCards(ctx context.Context, setCode string) ([]models.Card, bool, error) {
	cards, ok := m.sets[setCode]
	return cards, ok, nil
}

func (m *memCache) PutSetCards(ctx context.Context, setCode string, cards []models.Card) error {
	m.sets[setCode] = cards
	m.puts++
	return nil
}

func TestSetCardsCacheHitSkipsUpstream(t *testing.T) {
	upstream := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream++
		writeJSON(w, http.StatusOK, map[string]any{
			"data":     []any{wireCard("Fresh", "neo", "common")},
			"has_more": false,
		})
	}))
	cache := &memCache{sets: map[string][]models.Card{}}
	c.Cache = cache

	first, err := c.SetCards(context.Background(), "neo")
	require.NoError(t, err)
	second, err := c.SetCards(context.Background(), "neo")
	require.NoError(t, err)

	assert.Equal(t, 1, upstream)
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, first, second)
}

func TestNamedFuzzyNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": 404, "code": "not_found", "details": "No cards found",
		})
	}))
	_, err := c.NamedFuzzy(context.Background(), "Xyzzy")
	var nf *models.NoCardFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Xyzzy", nf.Identifier)
}

func TestNamedExact(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lightning Bolt", r.URL.Query().Get("exact"))
		writeJSON(w, http.StatusOK, wireCard("Lightning Bolt", "lea", "common"))
	}))
	card, err := c.NamedExact(context.Background(), "Lightning Bolt")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", card.Name)
	assert.Equal(t, "lea", card.SetCode)
}

func TestByCollectorNumber(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/neo/42", r.URL.Path)
		writeJSON(w, http.StatusOK, wireCard("Numbered", "neo", "uncommon"))
	}))
	card, err := c.ByCollectorNumber(context.Background(), "neo", "42")
	require.NoError(t, err)
	assert.Equal(t, "Numbered", card.Name)
}

func TestCollectionPartitionsMisses(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Identifiers []Identifier `json:"identifiers"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Identifiers, 2)
		writeJSON(w, http.StatusOK, map[string]any{
			"data":      []any{wireCard("Found One", "neo", "common")},
			"not_found": []any{map[string]string{"name": "Ghost Card"}},
		})
	}))
	found, missed, err := c.Collection(context.Background(), []Identifier{
		{Name: "Found One"}, {Name: "Ghost Card"},
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Len(t, missed, 1)
	assert.Equal(t, "Ghost Card", missed[0].Name)
}

func TestCollectionBatches(t *testing.T) {
	requests := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req struct {
			Identifiers []Identifier `json:"identifiers"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.LessOrEqual(t, len(req.Identifiers), collectionBatchSize)
		var data []any
		for _, id := range req.Identifiers {
			data = append(data, wireCard(id.Name, "neo", "common"))
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": data})
	}))

	ids := make([]Identifier, 80)
	for i := range ids {
		ids[i] = Identifier{Name: fmt.Sprintf("Card %d", i)}
	}
	found, missed, err := c.Collection(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	assert.Len(t, found, 80)
	assert.Empty(t, missed)
}

func TestSearchNotFoundMapsToNoCards(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": 404, "code": "not_found", "details": "no results",
		})
	}))
	_, err := c.Search(context.Background(), "set:none")
	assert.ErrorIs(t, err, models.ErrNoCards)
}

func TestIdentifierString(t *testing.T) {
	assert.Equal(t, "neo/42", Identifier{Set: "neo", CollectorNumber: "42"}.String())
	assert.Equal(t, "Bolt (lea)", Identifier{Name: "Bolt", Set: "lea"}.String())
	assert.Equal(t, "Bolt", Identifier{Name: "Bolt"}.String())
}

func TestDoubleFacedAggregation(t *testing.T) {
	cj := cardJSON{
		ID: "id-dfc", Name: "Front // Back", Set: "neo", Rarity: "rare",
		Layout: "transform", Booster: true,
		CardFaces: []faceJSON{
			{Name: "Front", OracleText: "Flying", Colors: []string{"W"},
				ImageURIs: imageURIs{Large: "https://img.test/front.jpg"}},
			{Name: "Back", OracleText: "Haste", Colors: []string{"R"},
				ImageURIs: imageURIs{Large: "https://img.test/back.jpg"}},
		},
	}
	card, err := cj.toModel()
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/front.jpg", card.ImageURI)
	assert.Equal(t, "https://img.test/back.jpg", card.BackImageURI)
	assert.Equal(t, "Flying\n//\nHaste", card.OracleText)
	assert.ElementsMatch(t, []string{"W", "R"}, card.Colors)
	assert.True(t, card.IsDoubleFaced())
}
