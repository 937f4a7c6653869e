package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/repository"
)

// GET /api/v1/content/:id
func (h HandlerSet) GetContent(c *gin.Context) error {
	id := c.Param("id")
	if id == "" {
		return httperr.BadRequest("get_content", "missing content id")
	}

	content, err := h.content.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return httperr.NotFound("get_content", "content not found")
		}
		return httperr.Internal("get_content", err)
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
	return nil
}
