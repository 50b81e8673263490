package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker tracks revoked bearer tokens in Redis. Logout puts the
// token's jti on the denylist with a TTL matching the token lifetime, so the
// entry expires together with the token it blocks.
// Key format: revoked:<jti>
type TokenRevoker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenRevoker creates a TokenRevoker wrapping the given Redis client.
func NewTokenRevoker(client *redis.Client, ttl time.Duration) *TokenRevoker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenRevoker{client: client, ttl: ttl}
}

// IsRevoked reports whether the token with this jti has been revoked.
func (r *TokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Revoke puts the jti on the denylist.
func (r *TokenRevoker) Revoke(ctx context.Context, jti string) error {
	return r.client.Set(ctx, r.key(jti), "1", r.ttl).Err()
}

func (r *TokenRevoker) key(jti string) string {
	return "revoked:" + jti
}
