package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/middleware"
	"eduforge/api/internal/repository"
)

// GET /api/v1/images/:id
func (h HandlerSet) GetImage(c *gin.Context) error {
	id := c.Param("id")
	if id == "" {
		return httperr.BadRequest("get_image", "missing image id")
	}

	image, err := h.images.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return httperr.NotFound("get_image", "image not found")
		}
		return httperr.Internal("get_image", err)
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
	return nil
}

// GET /api/v1/images
func (h HandlerSet) ListImages(c *gin.Context) error {
	subject := middleware.Subject(c)
	if subject == "" {
		return httperr.Unauthorized("list_images")
	}

	limit, offset := pagination(c)
	images, err := h.images.ListByOwner(c.Request.Context(), subject, limit, offset)
	if err != nil {
		return httperr.Internal("list_images", err)
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
	return nil
}
