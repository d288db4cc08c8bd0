//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/testutil"
)

func newTestCache(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	c, err := New(ctx, testutil.RequireEnv(t, "REDIS_URL"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, testutil.FlushRedis(ctx, c.Client()))
	return ctx, c
}

func TestIntegrationCache_AuthContextRoundTrip(t *testing.T) {
	ctx, c := newTestCache(t)

	changed := time.Now().UTC().Truncate(time.Second)
	auth := &model.AuthContext{
		UserID:            "01HXUSER",
		Username:          "alice",
		Nickname:          "앨리스",
		Email:             "alice@example.com",
		PasswordChangedAt: &changed,
	}

	miss, err := c.GetAuthContext(ctx, auth.UserID)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.SetAuthContext(ctx, auth))

	got, err := c.GetAuthContext(ctx, auth.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, auth.Username, got.Username)
	assert.Equal(t, auth.Nickname, got.Nickname)
	require.NotNil(t, got.PasswordChangedAt)
	assert.True(t, changed.Equal(*got.PasswordChangedAt))

	require.NoError(t, c.DeleteAuthContext(ctx, auth.UserID))

	gone, err := c.GetAuthContext(ctx, auth.UserID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestIntegrationCache_RateLimitExhaustsBurst(t *testing.T) {
	ctx, c := newTestCache(t)

	for i := 0; i < 3; i++ {
		res, err := c.CheckIPRateLimit(ctx, "203.0.113.7", 1, 3)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i)
	}

	res, err := c.CheckIPRateLimit(ctx, "203.0.113.7", 1, 3)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	// Buckets are per key.
	other, err := c.CheckUserRateLimit(ctx, "01HXUSER", 1, 3)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}
