package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/urlkurz/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository.
// Each record is a string key "url:<code>" holding the original URL.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a new Redis-backed URL store.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "url:",
	}
}

func (r *RedisStore) Create(ctx context.Context, shortURL *shortener.ShortenedURL) error {
	const op = "store.redis.Create"

	// SET NX checks and inserts in one command.
	created, err := r.client.SetNX(ctx, r.prefix+shortURL.Code.String(), shortURL.OriginalURL.String(), 0).Result()
	if err != nil {
		return mapRedisError(op, err)
	}

	if !created {
		return shortener.ErrAlreadyExists
	}

	return nil
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortenedURL, error) {
	const op = "store.redis.GetByCode"

	rawURL, err := r.client.Get(ctx, r.prefix+code.String()).Result()
	if err != nil {
		return nil, mapRedisError(op, err)
	}

	return decodeRecord(op, rawURL, code.String())
}

// mapRedisError translates go-redis failures into the shortener error taxonomy.
func mapRedisError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return shortener.ErrNotFound
	}

	return shortener.NewBackendError(op, err)
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
