package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// writeAPIError maps the engine's error taxonomy onto HTTP statuses. Raw
// internal errors are logged, never echoed.
func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch {
	case errors.Is(err, models.ErrEmptyInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "empty input"})
		return
	case errors.Is(err, models.ErrWrongCardCount):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "wrong card count"})
		return
	case errors.Is(err, models.ErrNoCardFound):
		var ncf *models.NoCardFoundError
		msg := "no card found"
		if errors.As(err, &ncf) {
			msg = ncf.Error()
		}
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msg})
		return
	case errors.Is(err, models.ErrNoCards), errors.Is(err, sql.ErrNoRows):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no cards"})
		return
	case errors.Is(err, models.ErrNotInBoosters):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "set has no cards found in boosters"})
		return
	case errors.Is(err, models.ErrNotEnoughBasicLands):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "not enough basic lands"})
		return
	case errors.Is(err, models.ErrNoValidPromo):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "no valid promo"})
		return
	case errors.Is(err, models.ErrUnsupported):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case errors.Is(err, models.ErrGenerationExhausted):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "pack generation exhausted retries"})
		return
	}

	log.Printf("internal error: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
