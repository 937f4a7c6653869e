package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/auth"
	"eduforge/api/internal/models"
)

// RequireRole guards role-restricted page routes. A caller whose resolved
// role does not match is sent back to the application root before any
// handler on the group runs. Unauthenticated callers resolve to no role
// and are redirected the same way.
func RequireRole(resolver *auth.Resolver, required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := resolver.Resolve(c.Request.Context(), SessionClaims(c))
		if role != required {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
