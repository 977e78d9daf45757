package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/urlkurz/internal/shortener"
	"go.uber.org/zap"
)

// RedisCache keeps code to URL mappings in Redis hashes under cache:url:<code>.
// Read failures are logged and reported as misses.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a cache; a zero ttl keeps entries until evicted.
func NewRedisCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "cache:url:",
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached mapping for code, if any.
func (c *RedisCache) Get(ctx context.Context, code shortener.Code) (*shortener.ShortenedURL, bool) {
	result, err := c.client.HGetAll(ctx, c.prefix+code.String()).Result()
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("code", code.String()), zap.Error(err))

		return nil, false
	}

	if len(result) == 0 {
		return nil, false
	}

	url, err := decodeRecord("store.RedisCache.Get", result["original_url"], result["code"])
	if err != nil {
		c.logger.Warn("ignoring corrupt cache entry", zap.String("code", code.String()), zap.Error(err))

		return nil, false
	}

	return url, true
}

// Warm writes an entry into the cache.
func (c *RedisCache) Warm(ctx context.Context, shortURL *shortener.ShortenedURL) error {
	pipe := c.client.Pipeline()
	key := c.prefix + shortURL.Code.String()

	pipe.HSet(ctx, key, map[string]interface{}{
		"code":         shortURL.Code.String(),
		"original_url": shortURL.OriginalURL.String(),
	})

	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}

	_, err := pipe.Exec(ctx)

	return err
}

// RedisCacheRepository wraps a Repository with a read-through RedisCache.
// Cache failures never surface to callers.
type RedisCacheRepository struct {
	store  shortener.Repository
	cache  *RedisCache
	logger *zap.Logger
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(store shortener.Repository, cache *RedisCache, logger *zap.Logger) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Create stores a short URL in the underlying store. The cache is filled on
// first read or by an out-of-band Warm.
func (r *RedisCacheRepository) Create(ctx context.Context, shortURL *shortener.ShortenedURL) error {
	return r.store.Create(ctx, shortURL)
}

// GetByCode retrieves a short URL by its code, checking cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortenedURL, error) {
	if url, ok := r.cache.Get(ctx, code); ok {
		return url, nil
	}

	url, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Warm(ctx, url); err != nil {
		r.logger.Warn("cache write failed", zap.String("code", url.Code.String()), zap.Error(err))
	}

	return url, nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
