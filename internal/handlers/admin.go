package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/auth"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/config"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/database"
)

type loginRequest struct {
	Secret string `json:"secret"`
}

// AdminLoginHandler exchanges the shared admin secret for a bearer token.
// POST /api/admin/login
func AdminLoginHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.AdminEnabled() {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := auth.CompareSecretHash(cfg.AdminSecretHash, req.Secret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret"})
			return
		}
		token, err := auth.GenerateAdminToken(cfg)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// AdminCacheHandler lists the cache directory.
// GET /api/admin/cache
func AdminCacheHandler(cache *database.CardCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		sets, err := cache.ListSets(c.Request.Context())
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if sets == nil {
			sets = []database.CachedSet{}
		}
		c.JSON(http.StatusOK, gin.H{"sets": sets})
	}
}

// AdminPurgeHandler drops one set's cache entry so the next request refetches.
// DELETE /api/admin/cache/:set
func AdminPurgeHandler(cache *database.CardCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		setCode := strings.ToLower(c.Param("set"))
		purged, err := cache.PurgeSet(c.Request.Context(), setCode)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if !purged {
			c.JSON(http.StatusNotFound, gin.H{"error": "not cached"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"purged": setCode})
	}
}
