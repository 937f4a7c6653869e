// Package identity calls the external identity provider's management API.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eduforge/api/internal/auth"
)

// Profile is the provider's full user record, fetched when session claims
// carry no role.
type Profile struct {
	Subject         string            `json:"id"`
	Email           string            `json:"email"`
	DisplayName     string            `json:"displayName"`
	PublicMetadata  auth.RoleMetadata `json:"publicMetadata"`
	PrivateMetadata auth.RoleMetadata `json:"privateMetadata"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) FetchUser(ctx context.Context, subject string) (Profile, error) {
	endpoint := c.baseURL + "/v1/users/" + url.PathEscape(subject)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("fetch user: provider returned %s", resp.Status)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return Profile{}, fmt.Errorf("decode user profile: %w", err)
	}
	return profile, nil
}

// FetchRole reads the role off the full profile, public metadata first.
func (c *Client) FetchRole(ctx context.Context, subject string) (string, error) {
	profile, err := c.FetchUser(ctx, subject)
	if err != nil {
		return "", err
	}
	if profile.PublicMetadata.Role != "" {
		return profile.PublicMetadata.Role, nil
	}
	return profile.PrivateMetadata.Role, nil
}
