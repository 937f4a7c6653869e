package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/repository"
)

// GET /api/v1/assessments/:id
func (h HandlerSet) GetAssessment(c *gin.Context) error {
	id := c.Param("id")
	if id == "" {
		return httperr.BadRequest("get_assessment", "missing assessment id")
	}

	assessment, err := h.assessments.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return httperr.NotFound("get_assessment", "assessment not found")
		}
		return httperr.Internal("get_assessment", err)
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
	return nil
}
