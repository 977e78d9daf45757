package container

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
	"github.com/samber/do"
	"github.com/serroba/urlkurz/internal/shortener"
	"github.com/serroba/urlkurz/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the shortener.Repository selected by Options.Storage,
// wrapped in the Redis and local read caches when they are enabled.
// Order outermost first: local cache, Redis cache, backend.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var repo shortener.Repository

		switch opts.Storage {
		case StorageMemory:
			repo = store.NewMemoryStore()
		case StoragePostgres:
			pg, err := do.Invoke[*Postgres](i)
			if err != nil {
				return nil, err
			}

			repo = store.NewPostgresStore(pg.Pool)
		case StorageRedis:
			repo = store.NewRedisStore(do.MustInvoke[*Redis](i).Client)
		default:
			return nil, fmt.Errorf("unknown storage backend %q", opts.Storage)
		}

		if opts.CacheTTLSeconds > 0 {
			cache := do.MustInvoke[*store.RedisCache](i)
			repo = store.NewRedisCacheRepository(repo, cache, logger)
		}

		if opts.LocalCacheSize > 0 {
			local, err := store.NewLocalCacheRepository(repo, int64(opts.LocalCacheSize), opts.LocalCacheTTL())
			if err != nil {
				return nil, err
			}

			repo = local
		}

		logger.Info("repository ready",
			zap.String("storage", opts.Storage),
			zap.Bool("redis_cache", opts.CacheTTLSeconds > 0),
			zap.Bool("local_cache", opts.LocalCacheSize > 0),
		)

		return repo, nil
	})
}

// RedisCachePackage provides *store.RedisCache over the shared Redis client.
func RedisCachePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.RedisCache, error) {
		opts := do.MustInvoke[*Options](i)

		return store.NewRedisCache(
			do.MustInvoke[*Redis](i).Client,
			opts.CacheTTL(),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// ServicePackage provides *shortener.Service with a nanoid code generator.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)

		generator, err := nanoid.Standard(opts.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("code generator: %w", err)
		}

		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			generator,
			shortener.WithMaxAttempts(opts.CodeAttempts),
		), nil
	})
}
