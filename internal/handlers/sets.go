package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/database"
)

// SetsHandler lists the sets the service has seen, with card counts and
// freshness. The directory grows as sets are requested; it is the cache
// table, not the upstream catalog.
// GET /api/sets
func SetsHandler(cache *database.CardCache) gin.HandlerFunc {
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
