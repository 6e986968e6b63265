package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/auth"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/booster"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/config"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/database"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/scryfall"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tts"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubSource serves canned sets without touching the network.
type stubSource struct {
	sets map[string][]models.Card
}

func (s *stubSource) SetCards(ctx context.Context, setCode string) ([]models.Card, error) {
	return s.sets[setCode], nil
}

// stubResolver resolves deck entries by exact name.
type stubResolver struct {
	cards map[string]models.Card
}

func (s *stubResolver) Collection(ctx context.Context, ids []scryfall.Identifier) ([]models.Card, []scryfall.Identifier, error) {
	var found []models.Card
	var missed []scryfall.Identifier
	for _, id := range ids {
		if c, ok := s.cards[id.Name]; ok {
			found = append(found, c)
		} else {
			missed = append(missed, id)
		}
	}
	return found, missed, nil
}

func testCard(name string, rarity models.Rarity, color string) models.Card {
	c := models.Card{
		ID: "id-" + name, Name: name, SetCode: "tst",
		Rarity: rarity, TypeLine: "Creature — Test", Layout: "normal",
		Booster: true, Nonfoil: true, Foil: true, Lang: "en",
	}
	if color != "" {
		c.Colors = []string{color}
	}
	return c
}

// draftableSet is a pool rich enough for the default slot model to always
// settle: commons and uncommons in every color plus rares, basics, a token.
func draftableSet() []models.Card {
	colors := []string{"W", "U", "B", "R", "G"}
	basics := map[string]string{"W": "Plains", "U": "Island", "B": "Swamp", "R": "Mountain", "G": "Forest"}
	var cards []models.Card
	for _, col := range colors {
		for i := 0; i < 10; i++ {
			cards = append(cards, testCard(fmt.Sprintf("Common %s %d", col, i), models.Common, col))
		}
		for i := 0; i < 3; i++ {
			cards = append(cards, testCard(fmt.Sprintf("Uncommon %s %d", col, i), models.Uncommon, col))
		}
		cards = append(cards, testCard("Rare "+col, models.Rare, col))
		cards = append(cards, testCard("Mythic "+col, models.Mythic, col))
		land := testCard(basics[col], models.Common, "")
		land.TypeLine = "Basic Land"
		cards = append(cards, land)
	}
	token := testCard("Soldier", models.Common, "")
	token.Layout = "token"
	token.TypeLine = "Token Creature — Soldier"
	cards = append(cards, token)
	return cards
}

type testEnv struct {
	router *gin.Engine
	cache  *database.CardCache
	cfg    config.Config
}

func newTestEnv(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()
	db, err := database.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	cache := database.NewCardCache(db, time.Hour)

	gen := &booster.Generator{
		Source: &stubSource{sets: map[string][]models.Card{"tst": draftableSet()}},
		Logger: zap.NewNop(),
		Rand:   rand.New(rand.NewSource(11)),
	}
	resolver := &stubResolver{cards: map[string]models.Card{
		"Lightning Bolt": testCard("Lightning Bolt", models.Common, "R"),
		"Island":         testCard("Island", models.Common, ""),
	}}

	router := gin.New()
	RegisterRoutes(router, Deps{
		Cfg:      cfg,
		Logger:   zap.NewNop(),
		Gen:      gen,
		Cache:    cache,
		Resolver: resolver,
		TTS:      tts.New(nil),
	})
	return &testEnv{router: router, cache: cache, cfg: cfg}
}

func (e *testEnv) do(method, target, contentType, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodGet, "/healthz", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestBoosterJSONFormat(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodGet, "/api/booster/tst?format=json", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Packs []models.Pack `json:"packs"`
	}
	require.NoError(t, jsonBody(w, &resp))
	require.Len(t, resp.Packs, 1)
	assert.Equal(t, "tst", resp.Packs[0].SetCode)
	assert.Len(t, resp.Packs[0].Cards, 15)
	assert.Len(t, resp.Packs[0].Tokens, 1)
}

func TestBoosterDefaultsToTTS(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodGet, "/api/booster/tst", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var obj tts.SavedObject
	require.NoError(t, jsonBody(w, &obj))
	require.Len(t, obj.ObjectStates, 1)
	assert.Equal(t, "DeckCustom", obj.ObjectStates[0].Name)
	assert.Equal(t, "TST booster", obj.ObjectStates[0].Nickname)
}

func TestBoosterOptionsFlags(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodGet, "/api/booster/tst?format=json&tokens=false&lands=false", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Packs []models.Pack `json:"packs"`
	}
	require.NoError(t, jsonBody(w, &resp))
	require.Len(t, resp.Packs, 1)
	assert.Empty(t, resp.Packs[0].Tokens)
	for _, sel := range resp.Packs[0].Cards {
		assert.False(t, sel.Card.IsBasicLand())
	}
}

func TestBoosterCountValidation(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	for _, q := range []string{"count=0", "count=-3", "count=nope", "count=201"} {
		w := env.do(http.MethodGet, "/api/booster/tst?"+q, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", q)
	}
}

func TestBoosterUnknownSet(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodGet, "/api/booster/none", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoosterMultiplePacksBecomeBag(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodGet, "/api/booster/tst?count=3", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var obj tts.SavedObject
	require.NoError(t, jsonBody(w, &obj))
	require.Len(t, obj.ObjectStates, 1)
	assert.Equal(t, "Bag", obj.ObjectStates[0].Name)
	assert.Len(t, obj.ObjectStates[0].ContainedObjects, 3)
}

func TestPrereleaseRoute(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodGet, "/api/prerelease/tst?format=json", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var kit booster.Prerelease
	require.NoError(t, jsonBody(w, &kit))
	assert.Len(t, kit.Packs, 6)
	assert.True(t, kit.Promo.Foil)
	assert.Len(t, kit.Lands, 20)
}

func TestDeckFromPlainText(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodPost, "/api/deck", "text/plain", "4 Lightning Bolt\n20 Island\n", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var obj tts.SavedObject
	require.NoError(t, jsonBody(w, &obj))
	require.Len(t, obj.ObjectStates, 1)
	assert.Len(t, obj.ObjectStates[0].ContainedObjects, 24)
}

func TestDeckFromJSONBody(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	body := `{"name":"Burn","list":"4 Lightning Bolt"}`
	w := env.do(http.MethodPost, "/api/deck", "application/json", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var obj tts.SavedObject
	require.NoError(t, jsonBody(w, &obj))
	require.Len(t, obj.ObjectStates, 1)
	assert.Equal(t, "Burn", obj.ObjectStates[0].Nickname)
}

func TestDeckUnknownCard(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodPost, "/api/deck", "text/plain", "1 Made Up Card\n", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Made Up Card")
}

func TestDeckEmptyBody(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodPost, "/api/deck", "text/plain", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetsDirectory(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	require.NoError(t, env.cache.PutSetCards(context.Background(), "neo",
		[]models.Card{testCard("Alpha", models.Common, "W")}))

	w := env.do(http.MethodGet, "/api/sets", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sets []database.CachedSet `json:"sets"`
	}
	require.NoError(t, jsonBody(w, &resp))
	require.Len(t, resp.Sets, 1)
	assert.Equal(t, "neo", resp.Sets[0].SetCode)
	assert.Equal(t, 1, resp.Sets[0].CardCount)
}

func adminConfig(t *testing.T) config.Config {
	t.Helper()
	hash, err := auth.HashSecret("hunter2")
	require.NoError(t, err)
	return config.Config{
		AdminSecretHash: hash,
		JWTSecret:       "test-signing-secret",
		JWTIssuer:       "booster-pack-generator",
		JWTTTL:          time.Hour,
	}
}

func TestAdminSurfaceHiddenWhenUnconfigured(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	w := env.do(http.MethodPost, "/api/admin/login", "application/json", `{"secret":"x"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(http.MethodGet, "/api/admin/cache", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminLoginAndCacheFlow(t *testing.T) {
	env := newTestEnv(t, adminConfig(t))

	w := env.do(http.MethodPost, "/api/admin/login", "application/json", `{"secret":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/admin/login", "application/json", `{"secret":"hunter2"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, jsonBody(w, &login))
	require.NotEmpty(t, login.Token)

	w = env.do(http.MethodGet, "/api/admin/cache", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	authz := http.Header{"Authorization": {"Bearer " + login.Token}}
	w = env.do(http.MethodGet, "/api/admin/cache", "", "", authz)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.cache.PutSetCards(context.Background(), "neo",
		[]models.Card{testCard("Alpha", models.Common, "W")}))
	w = env.do(http.MethodDelete, "/api/admin/cache/neo", "", "", authz)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodDelete, "/api/admin/cache/neo", "", "", authz)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonBody(w *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(w.Body.Bytes(), out)
}
