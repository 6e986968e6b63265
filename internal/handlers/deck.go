package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/decklist"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tts"
)

// maxDecklistBytes bounds the submitted list body.
const maxDecklistBytes = 256 * 1024

type deckRequest struct {
	Name string `json:"name"`
	List string `json:"list"`
}

// DeckHandler turns a submitted deck list into a TTS deck. Accepts either a
// JSON body {"name": ..., "list": ...} or the raw list as text/plain.
// POST /api/deck
func DeckHandler(resolver decklist.Resolver, ser *tts.Serializer) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := readDeckRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		list, err := decklist.Parse(req.List)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		deck, err := decklist.Build(c.Request.Context(), resolver, list)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"sections": deck.Sections})
			return
		}

		name := req.Name
		if name == "" {
			name = "Imported deck"
		}
		ctx := c.Request.Context()
		var objects []tts.Object
		for _, section := range deck.Order {
			label := name
			if section != "Deck" {
				label = name + " - " + section
			}
			obj := ser.Deck(ctx, label, deck.Sections[section])
			objects = append(objects, obj.ObjectStates...)
		}
		c.JSON(http.StatusOK, tts.SavedObject{ObjectStates: objects})
	}
}

func readDeckRequest(c *gin.Context) (deckRequest, error) {
	var req deckRequest
	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&req); err != nil {
			return deckRequest{}, err
		}
		return req, nil
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDecklistBytes))
	if err != nil {
		return deckRequest{}, err
	}
	if len(body) == 0 {
		return deckRequest{}, models.ErrEmptyInput
	}
	req.List = string(body)
	return req, nil
}
