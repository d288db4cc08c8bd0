package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memore/memore/internal/model"
)

const (
	authCachePrefix = namespace + "auth:user:"
	// authCacheTTL bounds how long a stale identity can survive without invalidation.
	authCacheTTL = 5 * time.Minute
)

// cachedIdentity is the JSON shape stored in Redis.
type cachedIdentity struct {
	UserID            string     `json:"user_id"`
	Username          string     `json:"username"`
	Nickname          string     `json:"nickname"`
	Email             string     `json:"email"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`
}

func authCacheKey(userID string) string {
	return authCachePrefix + userID
}

// GetAuthContext returns the cached identity for userID.
// A miss or a corrupted entry yields (nil, nil).
func (c *Cache) GetAuthContext(ctx context.Context, userID string) (*model.AuthContext, error) {
	data, err := c.client.Get(ctx, authCacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth context: %w", err)
	}

	var cached cachedIdentity
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, nil //nolint:nilerr
	}

	return &model.AuthContext{
		UserID:            cached.UserID,
		Username:          cached.Username,
		Nickname:          cached.Nickname,
		Email:             cached.Email,
		PasswordChangedAt: cached.PasswordChangedAt,
	}, nil
}

// SetAuthContext caches an identity under its user ID.
func (c *Cache) SetAuthContext(ctx context.Context, auth *model.AuthContext) error {
	data, err := json.Marshal(cachedIdentity{
		UserID:            auth.UserID,
		Username:          auth.Username,
		Nickname:          auth.Nickname,
		Email:             auth.Email,
		PasswordChangedAt: auth.PasswordChangedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal auth context: %w", err)
	}

	return c.client.Set(ctx, authCacheKey(auth.UserID), data, authCacheTTL).Err()
}

// DeleteAuthContext drops the cached identity. Called whenever the user row
// changes in a way the auth middleware cares about.
func (c *Cache) DeleteAuthContext(ctx context.Context, userID string) error {
	return c.client.Del(ctx, authCacheKey(userID)).Err()
}
