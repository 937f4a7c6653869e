package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/ids"
	"eduforge/api/internal/middleware"
	"eduforge/api/internal/models"
	"eduforge/api/internal/repository"
)

// GET /api/v1/users/me
//
// First sight of a subject materializes its profile row from the session
// claims, default role student.
func (h HandlerSet) Me(c *gin.Context) error {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		return httperr.Unauthorized("get_me")
	}

	user, err := h.users.FindBySubject(c.Request.Context(), claims.Subject)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"user": user})
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return httperr.Internal("get_me", err)
	}

	user = models.User{
		ID:          ids.New(),
		Subject:     claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
	}
	if err := user.Normalize(); err != nil {
		return httperr.BadRequest("get_me", err.Error())
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		return httperr.Internal("get_me", err)
	}

	// re-read so a concurrent first sight returns the row that won
	user, err = h.users.FindBySubject(c.Request.Context(), claims.Subject)
	if err != nil {
		return httperr.Internal("get_me", err)
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
	return nil
}
