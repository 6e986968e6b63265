package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/booster"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tracing"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tts"
)

// maxPacksPerRequest bounds ?count= so one request cannot monopolize the
// card API or the process.
const maxPacksPerRequest = 200

// BoosterHandler deals one or more boosters for a set.
// GET /api/booster/:set?count=1&format=tts&lands=true&tokens=true&extendedart=true
func BoosterHandler(gen *booster.Generator, ser *tts.Serializer) gin.HandlerFunc {
	return func(c *gin.Context) {
		setCode := strings.ToLower(c.Param("set"))
		count, err := parseCount(c, 1)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, span := tracing.Start(c.Request.Context(), "booster.generate")
		span.SetAttributes(attribute.String("set", setCode), attribute.Int("count", count))
		packs, err := gen.Packs(ctx, setCode, count, parseOptions(c))
		span.End()
		if err != nil {
			writeAPIError(c, err)
			return
		}
		writePacks(c, ser, strings.ToUpper(setCode)+" boosters", packs)
	}
}

// BoxHandler deals a full booster box.
// GET /api/box/:set
func BoxHandler(gen *booster.Generator, ser *tts.Serializer) gin.HandlerFunc {
	return func(c *gin.Context) {
		setCode := strings.ToLower(c.Param("set"))
		packs, err := gen.Box(c.Request.Context(), setCode, parseOptions(c))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		writePacks(c, ser, strings.ToUpper(setCode)+" booster box", packs)
	}
}

// PrereleaseHandler deals a prerelease kit.
// GET /api/prerelease/:set
func PrereleaseHandler(gen *booster.Generator, ser *tts.Serializer) gin.HandlerFunc {
	return func(c *gin.Context) {
		setCode := strings.ToLower(c.Param("set"))
		kit, err := gen.PrereleaseKit(c.Request.Context(), setCode, parseOptions(c))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if wantsJSON(c) {
			c.JSON(http.StatusOK, kit)
			return
		}

		ctx := c.Request.Context()
		obj := ser.Packs(ctx, strings.ToUpper(setCode)+" prerelease", kit.Packs)
		bag := &obj.ObjectStates[0]
		promoDeck := ser.Deck(ctx, "Prerelease promo", []models.CardSelection{kit.Promo})
		landDeck := ser.Deck(ctx, "Basic lands", kit.Lands)
		bag.ContainedObjects = append(bag.ContainedObjects,
			promoDeck.ObjectStates[0], landDeck.ObjectStates[0])
		c.JSON(http.StatusOK, obj)
	}
}

// LeagueHandler deals one boxing-league round of three boosters.
// GET /api/league/:set
func LeagueHandler(gen *booster.Generator, ser *tts.Serializer) gin.HandlerFunc {
	return func(c *gin.Context) {
		setCode := strings.ToLower(c.Param("set"))
		packs, err := gen.League(c.Request.Context(), setCode, parseOptions(c))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		writePacks(c, ser, strings.ToUpper(setCode)+" league round", packs)
	}
}

func writePacks(c *gin.Context, ser *tts.Serializer, nickname string, packs []*models.Pack) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"packs": packs})
		return
	}
	ctx := c.Request.Context()
	if len(packs) == 1 {
		c.JSON(http.StatusOK, ser.Pack(ctx, packs[0]))
		return
	}
	c.JSON(http.StatusOK, ser.Packs(ctx, nickname, packs))
}

func wantsJSON(c *gin.Context) bool {
	return c.DefaultQuery("format", "tts") == "json"
}

func parseCount(c *gin.Context, def int) (int, error) {
	raw := c.Query("count")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("count must be a positive integer")
	}
	if n > maxPacksPerRequest {
		return 0, fmt.Errorf("count must be at most %d", maxPacksPerRequest)
	}
	return n, nil
}

// parseOptions reads the option flags; everything defaults on. Unknown query
// keys become free-form special flags.
func parseOptions(c *gin.Context) booster.Options {
	opts := booster.Options{
		IncludeBasicLands:  boolQuery(c, "lands", true),
		IncludeExtendedArt: boolQuery(c, "extendedart", true),
		IncludeTokens:      boolQuery(c, "tokens", true),
	}
	known := map[string]bool{
		"lands": true, "extendedart": true, "tokens": true,
		"count": true, "format": true,
	}
	for key, vals := range c.Request.URL.Query() {
		if known[key] || len(vals) == 0 {
			continue
		}
		if v, err := strconv.ParseBool(vals[0]); err == nil {
			if opts.Special == nil {
				opts.Special = map[string]bool{}
			}
			opts.Special[key] = v
		}
	}
	return opts
}

func boolQuery(c *gin.Context, key string, def bool) bool {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
