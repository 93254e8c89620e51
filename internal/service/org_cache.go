package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"himti/internal/cache"
)

const (
	orgCacheTTL        = 5 * time.Minute
	orgVersionKey      = "org:version"
	orgVersionLifetime = 24 * time.Hour
)

// OrgCache memoizes public organization lookups. Every write to departments, divisions or
// members bumps a shared version, so stale entries are never read again and simply expire.
// When a bump cannot be stored, lookups skip redis until every entry cached under the old
// version has expired.
type OrgCache struct {
	cache *cache.Client
	log   *zap.Logger
	now   func() time.Time

	mu          sync.Mutex
	bypassUntil time.Time
}

// NewOrgCache creates the organization lookup cache.
func NewOrgCache(c *cache.Client, log *zap.Logger) *OrgCache {
	return &OrgCache{cache: c, log: log, now: time.Now}
}

func (o *OrgCache) version(ctx context.Context) string {
	v, _ := o.cache.Get(ctx, orgVersionKey)
	if v == nil {
		return "0"
	}
	return string(v)
}

func (o *OrgCache) key(ctx context.Context, kind, slug string) string {
	return kind + ":slug:" + o.version(ctx) + ":" + slug
}

// invalidate retires every cached lookup.
func (o *OrgCache) invalidate(ctx context.Context) {
	now := o.now()
	v := strconv.FormatInt(now.UnixNano(), 10)
	if err := o.cache.SetStrict(ctx, orgVersionKey, []byte(v), orgVersionLifetime); err != nil {
		o.log.Warn("organization cache version bump failed, bypassing cache", zap.Error(err))
		o.mu.Lock()
		o.bypassUntil = now.Add(orgCacheTTL)
		o.mu.Unlock()
	}
}

// bypassed reports whether lookups must go straight to the database.
func (o *OrgCache) bypassed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.bypassUntil.IsZero() {
		return false
	}
	if o.now().Before(o.bypassUntil) {
		return true
	}
	o.bypassUntil = time.Time{}
	return false
}

// after invalidates the cache when a write succeeded and passes err through.
func (o *OrgCache) after(ctx context.Context, err error) error {
	if err == nil {
		o.invalidate(ctx)
	}
	return err
}

// loadCached returns the cached value for key or calls fetch and caches its result.
func loadCached[T any](ctx context.Context, o *OrgCache, key string, fetch func() (*T, error)) (*T, error) {
	if o.bypassed() {
		return fetch()
	}
	if data, _ := o.cache.Get(ctx, key); data != nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		o.log.Debug("discarding undecodable cache entry", zap.String("key", key))
	}

	value, err := fetch()
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(value); err == nil {
		_ = o.cache.Set(ctx, key, payload, orgCacheTTL)
	}
	return value, nil
}
