package cache

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// indexKeyPrefix namespaces cached index pages in Redis
const indexKeyPrefix = "index_page:"

// Store is the key-value surface the page cache needs. The production
// implementation is Redis; tests substitute an in-memory store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ErrMiss is returned by Store.Get when the key is absent or expired
var ErrMiss = fmt.Errorf("cache miss")

// PageCache holds rendered index pages for a fixed interval, keyed by the
// request's query parameters. It is invalidated only by expiry or by an
// explicit clear from a post create/edit; other writes leave a bounded
// staleness window.
type PageCache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a PageCache. A nil store disables caching: every lookup
// misses and writes are dropped, so the service degrades to uncached
// serving when Redis is unavailable.
func New(store Store, ttl time.Duration, logger *zap.Logger) *PageCache {
	return &PageCache{store: store, ttl: ttl, logger: logger}
}

// Key builds the cache key for an index request from its query parameters
func Key(query url.Values) string {
	if len(query) == 0 {
		return indexKeyPrefix + "default"
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := indexKeyPrefix
	for i, k := range keys {
		if i > 0 {
			out += "&"
		}
		out += k + "=" + query.Get(k)
	}
	return out
}

// GetIndex returns the cached rendering for the key, or ok=false on a miss
func (c *PageCache) GetIndex(ctx context.Context, key string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	body, err := c.store.Get(ctx, key)
	if err != nil {
		if err != ErrMiss {
			c.logger.Warn("Page cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return body, true
}

// SetIndex stores a rendered index page under the key for the cache TTL
func (c *PageCache) SetIndex(ctx context.Context, key string, body []byte) {
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("Page cache store failed", zap.String("key", key), zap.Error(err))
	}
}

// ClearIndex drops every cached index page. Called by post create/edit.
func (c *PageCache) ClearIndex(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.DeleteByPrefix(ctx, indexKeyPrefix); err != nil {
		c.logger.Warn("Page cache clear failed", zap.Error(err))
	}
}

// redisStore backs Store with a Redis client
type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a Store. Returns nil for a nil
// client so callers can pass the result straight to New.
func NewRedisStore(client *redis.Client) Store {
	if client == nil {
		return nil
	}
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	return body, err
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	keys, err := s.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
