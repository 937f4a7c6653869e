package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/ids"
	"eduforge/api/internal/models"
)

type generationEvent struct {
	Type  string        `json:"type"`
	Image *models.Image `json:"image,omitempty"`
	Comic *models.Comic `json:"comic,omitempty"`
}

// POST /api/v1/webhooks/generation
//
// Write path for the generation workflow: the service calls back with the
// finished artifact, which is validated and persisted here.
func (h HandlerSet) IngestGeneration(c *gin.Context) error {
	if !h.authorizeWebhook(c) {
		return httperr.Unauthorized("generation_webhook")
	}

	var event generationEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		return httperr.BadRequest("generation_webhook", "invalid event body")
	}

	switch event.Type {
	case "image":
		if event.Image == nil {
			return httperr.BadRequest("generation_webhook", "missing image payload")
		}
		image := *event.Image
		if image.ID == "" {
			image.ID = ids.New()
		}
		if err := image.Normalize(); err != nil {
			return httperr.BadRequest("generation_webhook", err.Error())
		}
		if err := h.images.Create(c.Request.Context(), image); err != nil {
			return httperr.Internal("generation_webhook", err)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "id": image.ID})

	case "comic":
		if event.Comic == nil {
			return httperr.BadRequest("generation_webhook", "missing comic payload")
		}
		comic := *event.Comic
		if comic.ID == "" {
			comic.ID = ids.New()
		}
		if err := comic.Normalize(); err != nil {
			return httperr.BadRequest("generation_webhook", err.Error())
		}
		if err := h.comics.Create(c.Request.Context(), comic); err != nil {
			return httperr.Internal("generation_webhook", err)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "id": comic.ID})

	default:
		return httperr.BadRequest("generation_webhook", "unknown event type")
	}

	return nil
}

// The generation service authenticates callbacks with the same shared key
// we use to call it.
func (h HandlerSet) authorizeWebhook(c *gin.Context) bool {
	key := h.cfg.Upstream.APIKey
	if key == "" {
		return true
	}
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ") == key
}
