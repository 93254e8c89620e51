package auth

import (
	"context"
	"strings"
	"time"

	"himti/internal/cache"
)

const otpRequestKeyPrefix = "ratelimit:otp:"

// OTPLimiter caps password-reset emails per address in a fixed window.
type OTPLimiter struct {
	cache  *cache.Client
	limit  int
	window time.Duration
}

func NewOTPLimiter(cache *cache.Client, limit int, window time.Duration) *OTPLimiter {
	return &OTPLimiter{cache: cache, limit: limit, window: window}
}

// Allow counts one request for email. It fails open when Redis is unavailable or the limiter
// is disabled.
func (l *OTPLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.limit <= 0 || l.window <= 0 {
		return true
	}
	n, ok := l.cache.IncrWindow(ctx, otpRequestKeyPrefix+strings.ToLower(email), l.window)
	if !ok {
		return true
	}
	return n <= int64(l.limit)
}
