package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/auth"
	"eduforge/api/internal/config"
)

const (
	ContextClaims  = "session_claims"
	ContextSubject = "session_subject"

	sessionCookie = "__session"
)

// Session parses the provider session token when one is present, from the
// Authorization header or the session cookie. It never rejects; handlers
// that need a caller check the context themselves.
func Session(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				tokenStr = cookie
			}
		}
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseSessionToken(tokenStr, cfg.Auth.SessionSecret)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}

// RequireSession rejects callers without a valid session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextSubject); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// SessionClaims pulls parsed claims off the request, nil when anonymous.
func SessionClaims(c *gin.Context) *auth.SessionClaims {
	val, exists := c.Get(ContextClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*auth.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// Subject returns the caller's identity string, empty when anonymous.
func Subject(c *gin.Context) string {
	return c.GetString(ContextSubject)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
