package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// RoleMetadata is the metadata object the identity provider attaches to
// sessions and profiles.
type RoleMetadata struct {
	Role string `json:"role,omitempty"`
}

// SessionClaims mirrors the provider's session token. Custom claims arrive
// either namespaced under "metadata" or flattened into "publicMetadata",
// depending on the provider's JWT template.
type SessionClaims struct {
	Name           string       `json:"name,omitempty"`
	Email          string       `json:"email,omitempty"`
	Metadata       RoleMetadata `json:"metadata"`
	PublicMetadata RoleMetadata `json:"publicMetadata"`
	jwt.RegisteredClaims
}

func ParseSessionToken(tokenStr string, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
