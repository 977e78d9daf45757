package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/serroba/urlkurz/internal/shortener"
)

// LocalCacheRepository wraps a Repository with an in-process ristretto cache for reads.
type LocalCacheRepository struct {
	store shortener.Repository
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewLocalCacheRepository creates an L1 cache holding at most maxItems records.
func NewLocalCacheRepository(store shortener.Repository, maxItems int64, ttl time.Duration) (*LocalCacheRepository, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("local cache size must be positive, got %d", maxItems)
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxItems * 10,
		MaxCost:            maxItems, // cost 1 per entry
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &LocalCacheRepository{
		store: store,
		cache: cache,
		ttl:   ttl,
	}, nil
}

func (l *LocalCacheRepository) Create(ctx context.Context, shortURL *shortener.ShortenedURL) error {
	return l.store.Create(ctx, shortURL)
}

func (l *LocalCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortenedURL, error) {
	if v, ok := l.cache.Get(code.String()); ok {
		shortURL := v.(shortener.ShortenedURL)

		return &shortURL, nil
	}

	shortURL, err := l.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	l.cache.SetWithTTL(code.String(), *shortURL, 1, l.ttl)
	l.cache.Wait()

	return shortURL, nil
}

// Shutdown releases the cache's background goroutines.
func (l *LocalCacheRepository) Shutdown() error {
	l.cache.Close()

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*LocalCacheRepository)(nil)
