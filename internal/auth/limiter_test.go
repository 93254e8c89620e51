package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"himti/internal/cache"
)

func newRedis(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return cache.NewFromRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestOTPLimiter_Window(t *testing.T) {
	c, mr := newRedis(t)
	l := NewOTPLimiter(c, 2, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "A@x.com"))
	assert.True(t, l.Allow(ctx, "a@x.com"))
	assert.False(t, l.Allow(ctx, "a@x.com"))
	assert.True(t, l.Allow(ctx, "b@x.com"))

	mr.FastForward(2 * time.Minute)
	assert.True(t, l.Allow(ctx, "a@x.com"))
}

func TestOTPLimiter_FailsOpen(t *testing.T) {
	ctx := context.Background()

	var nilLimiter *OTPLimiter
	assert.True(t, nilLimiter.Allow(ctx, "a@x.com"))
	assert.True(t, NewOTPLimiter(nil, 1, time.Minute).Allow(ctx, "a@x.com"))

	c, mr := newRedis(t)
	l := NewOTPLimiter(c, 1, time.Minute)
	mr.Close()
	assert.True(t, l.Allow(ctx, "a@x.com"))
	assert.True(t, l.Allow(ctx, "a@x.com"))
}

func TestTokenStore_RevokeAndExpire(t *testing.T) {
	c, mr := newRedis(t)
	s := NewTokenStore(c)
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, s.Revoke(ctx, "jti-2", 0))

	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)
	revoked, _ = s.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}
