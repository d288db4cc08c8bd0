package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/memore/memore/internal/auth"
	"github.com/memore/memore/internal/cache"
	"github.com/memore/memore/internal/model"
)

// countingLimiter allows the first n checks per key.
type countingLimiter struct {
	allow int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) check(key string) (*cache.RateLimitResult, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.seen[key]++
	allowed := l.seen[key] <= l.allow
	res := &cache.RateLimitResult{Allowed: allowed, ResetAt: time.Now().Add(time.Minute)}
	if !allowed {
		res.RetryAfter = 7 * time.Second
	}
	return res, nil
}

func (l *countingLimiter) CheckUserRateLimit(_ context.Context, userID string, _, _ int) (*cache.RateLimitResult, error) {
	return l.check("user:" + userID)
}

func (l *countingLimiter) CheckIPRateLimit(_ context.Context, ip string, _, _ int) (*cache.RateLimitResult, error) {
	return l.check("ip:" + ip)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitIP_BlocksAfterBurst(t *testing.T) {
	limiter := &countingLimiter{allow: 2, seen: map[string]int{}}
	h := RateLimitIP(RateLimitConfig{
		Logger:        discardLogger(),
		Limiter:       limiter,
		Enabled:       true,
		AuthPerMinute: 10,
		AuthBurst:     2,
	})(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "198.51.100.4:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "7", rec.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, 3, limiter.seen["ip:198.51.100.4"], "port must be stripped from the key")
}

func TestRateLimitUser_PerUserBuckets(t *testing.T) {
	limiter := &countingLimiter{allow: 1, seen: map[string]int{}}
	h := RateLimitUser(RateLimitConfig{
		Logger:       discardLogger(),
		Limiter:      limiter,
		Enabled:      true,
		APIPerMinute: 60,
		APIBurst:     1,
	})(okHandler())

	do := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
		req = req.WithContext(auth.ContextWithAuth(req.Context(), &model.AuthContext{UserID: userID}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("alice"))
	assert.Equal(t, http.StatusTooManyRequests, do("alice"))
	assert.Equal(t, http.StatusOK, do("bob"))
}

func TestRateLimit_DisabledOrFailingPassesThrough(t *testing.T) {
	tests := []struct {
		name string
		cfg  RateLimitConfig
	}{
		{"disabled", RateLimitConfig{Logger: discardLogger(), Limiter: &countingLimiter{seen: map[string]int{}}}},
		{"nil limiter", RateLimitConfig{Logger: discardLogger(), Enabled: true}},
		{"limiter error", RateLimitConfig{
			Logger:  discardLogger(),
			Enabled: true,
			Limiter: &countingLimiter{err: errors.New("redis down"), seen: map[string]int{}},
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RateLimitIP(tt.cfg)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
