package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/middleware"
)

// POST /api/v1/student/sync-resources
func (h HandlerSet) SyncResources(c *gin.Context) error {
	subject := middleware.Subject(c)
	if subject == "" {
		return httperr.Unauthorized("sync_resources")
	}

	result, err := h.sync.Sync(c.Request.Context(), subject)
	if err != nil {
		return httperr.Internal("sync_resources", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message(),
	})
	return nil
}
