package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"halal_scanner_backend/internal/lookup/transport"
	"halal_scanner_backend/platform/apperr"
	"halal_scanner_backend/platform/config"
	"halal_scanner_backend/platform/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "halal:lookup:"

// Cache stores finished lookup results by trimmed key. Cache failures are
// never fatal to a lookup.
type Cache interface {
	Get(ctx context.Context, key string) (transport.LookupResult, bool)
	Set(ctx context.Context, key string, result transport.LookupResult)
}

// NewCache builds the cache selected by cfg.
func NewCache(cfg config.CacheConfig, log *logger.Logger) (Cache, error) {
	switch strings.ToLower(cfg.GetCacheBackend()) {
	case "", config.CacheBackendNone:
		return NoopCache{}, nil
	case config.CacheBackendMemory:
		return NewMemoryCache(cfg.GetCacheSize(), cfg.GetCacheTTL()), nil
	case config.CacheBackendRedis:
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "parse redis url", err).WithOp("lookup.NewCache")
		}
		return NewRedisCache(redis.NewClient(opt), cfg.GetCacheTTL(), log), nil
	default:
		return nil, apperr.Internal(fmt.Sprintf("unknown cache backend %q", cfg.GetCacheBackend())).WithOp("lookup.NewCache")
	}
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (transport.LookupResult, bool) {
	return transport.LookupResult{}, false
}

func (NoopCache) Set(context.Context, string, transport.LookupResult) {}

// MemoryCache is an in-process LRU with per-entry expiry.
type MemoryCache struct {
	lru *expirable.LRU[string, transport.LookupResult]
}

// NewMemoryCache creates a cache holding at most size results for ttl.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, transport.LookupResult](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (transport.LookupResult, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Set(_ context.Context, key string, result transport.LookupResult) {
	c.lru.Add(key, result)
}

// RedisCache shares results between instances as JSON documents. Payloads in
// the ledger come back as generic JSON values.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisCache creates a cache over client.
func NewRedisCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func (c *RedisCache) Get(ctx context.Context, key string) (transport.LookupResult, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithContext(ctx).Warn("lookup cache read failed", "error", err)
		}
		return transport.LookupResult{}, false
	}

	var result transport.LookupResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.WithContext(ctx).Warn("lookup cache entry unreadable", "error", err)
		return transport.LookupResult{}, false
	}
	return result, true
}

func (c *RedisCache) Set(ctx context.Context, key string, result transport.LookupResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.log.WithContext(ctx).Warn("lookup cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.log.WithContext(ctx).Warn("lookup cache write failed", "error", err)
	}
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
