package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/booster"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/config"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/database"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/decklist"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/middleware"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tts"
)

// Deps bundles the long-lived collaborators the routes close over.
type Deps struct {
	Cfg      config.Config
	Logger   *zap.Logger
	Gen      *booster.Generator
	Cache    *database.CardCache
	Resolver decklist.Resolver
	TTS      *tts.Serializer
}

// RegisterRoutes wires the whole HTTP surface.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/sets", SetsHandler(deps.Cache))
	api.GET("/booster/:set", BoosterHandler(deps.Gen, deps.TTS))
	api.GET("/box/:set", BoxHandler(deps.Gen, deps.TTS))
	api.GET("/prerelease/:set", PrereleaseHandler(deps.Gen, deps.TTS))
	api.GET("/league/:set", LeagueHandler(deps.Gen, deps.TTS))
	api.POST("/deck", DeckHandler(deps.Resolver, deps.TTS))

	api.POST("/admin/login", AdminLoginHandler(deps.Cfg))
	admin := api.Group("/admin", middleware.RequireAdmin(deps.Cfg))
	admin.GET("/cache", AdminCacheHandler(deps.Cache))
	admin.DELETE("/cache/:set", AdminPurgeHandler(deps.Cache))

	r.GET("/ws/box/:set", BoxStreamHandler(deps.Gen, deps.Logger))
}
