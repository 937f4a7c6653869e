package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"eduforge/api/internal/models"
)

// ProfileRoler is the slice of the identity client the resolver needs.
type ProfileRoler interface {
	FetchRole(ctx context.Context, subject string) (string, error)
}

// Resolver turns a session into a declared role. Precedence: namespaced
// metadata claim, then public metadata claim, then a provider profile
// fetch. It never returns an error; fetch failures mean "no role".
type Resolver struct {
	provider ProfileRoler
	cache    *redis.Client
	ttl      time.Duration
	log      zerolog.Logger
}

func NewResolver(provider ProfileRoler, cache *redis.Client, ttl time.Duration, log zerolog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      log,
	}
}

func (r *Resolver) Resolve(ctx context.Context, claims *SessionClaims) models.UserRole {
	if claims == nil {
		return ""
	}

	if claims.Metadata.Role != "" {
		return models.UserRole(claims.Metadata.Role)
	}
	if claims.PublicMetadata.Role != "" {
		return models.UserRole(claims.PublicMetadata.Role)
	}

	subject := claims.Subject
	if subject == "" {
		return ""
	}

	if role, ok := r.cachedRole(ctx, subject); ok {
		return models.UserRole(role)
	}

	role, err := r.provider.FetchRole(ctx, subject)
	if err != nil {
		r.log.Warn().Err(err).Str("subject", subject).Msg("profile role fetch failed")
		return ""
	}
	if role != "" {
		r.storeRole(ctx, subject, role)
	}
	return models.UserRole(role)
}

func roleCacheKey(subject string) string {
	return "eduforge:role:" + subject
}

func (r *Resolver) cachedRole(ctx context.Context, subject string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	role, err := r.cache.Get(ctx, roleCacheKey(subject)).Result()
	if err != nil {
		return "", false
	}
	return role, true
}

func (r *Resolver) storeRole(ctx context.Context, subject, role string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, roleCacheKey(subject), role, r.ttl).Err(); err != nil {
		r.log.Debug().Err(err).Msg("role cache write failed")
	}
}
