package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"eduforge/api/internal/auth"
	"eduforge/api/internal/config"
	"eduforge/api/internal/models"
)

type noRoleProvider struct{}

func (noRoleProvider) FetchRole(context.Context, string) (string, error) { return "", nil }

func signSession(t *testing.T, secret, subject, role string) string {
	t.Helper()
	claims := auth.SessionClaims{
		Metadata: auth.RoleMetadata{Role: role},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}
	return token
}

func guardedRouter(required models.UserRole) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{Auth: config.AuthConfig{SessionSecret: "guard-secret"}}
	resolver := auth.NewResolver(noRoleProvider{}, nil, time.Minute, zerolog.Nop())

	rendered := false
	r := gin.New()
	r.Use(Session(cfg))
	group := r.Group("/"+string(required), RequireRole(resolver, required))
	group.GET("/dashboard", func(c *gin.Context) {
		rendered = true
		c.String(http.StatusOK, "dashboard")
	})
	return r, &rendered
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	r, rendered := guardedRouter(models.UserRoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, "guard-secret", "user_1", "student"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *rendered)
}

func TestGuardRedirectsWrongRole(t *testing.T) {
	r, rendered := guardedRouter(models.UserRoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/teacher/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, "guard-secret", "user_1", "student"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.False(t, *rendered, "no child content may render on redirect")
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	r, rendered := guardedRouter(models.UserRoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.False(t, *rendered)
}

func TestGuardRedirectsTamperedToken(t *testing.T) {
	r, rendered := guardedRouter(models.UserRoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, "other-secret", "user_1", "student"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, *rendered)
}
