package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/urlkurz/internal/events"
	"github.com/serroba/urlkurz/internal/handlers"
	"github.com/serroba/urlkurz/internal/health"
	"github.com/serroba/urlkurz/internal/messaging"
	"github.com/serroba/urlkurz/internal/metrics"
	"github.com/serroba/urlkurz/internal/middleware"
	"github.com/serroba/urlkurz/internal/shortener"
	"go.uber.org/zap"
)

// HealthPackage provides *health.Handler with one checker per configured backend.
func HealthPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*health.Handler, error) {
		opts := do.MustInvoke[*Options](i)
		checkers := map[string]health.Checker{}

		if opts.Storage == StoragePostgres {
			pg, err := do.Invoke[*Postgres](i)
			if err != nil {
				return nil, err
			}

			checkers["postgres"] = health.NewPostgresChecker(pg.Pool)
		}

		if opts.needsRedis() {
			checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*Redis](i).Client)
		}

		return health.NewHandler(checkers), nil
	})
}

// HTTPPackage provides the chi router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		m := do.MustInvoke[*metrics.Metrics](i)

		service, err := do.Invoke[*shortener.Service](i)
		if err != nil {
			return nil, err
		}

		healthHandler, err := do.Invoke[*health.Handler](i)
		if err != nil {
			return nil, err
		}

		publish, err := do.Invoke[messaging.Publish[events.URLShortened]](i)
		if err != nil {
			return nil, err
		}

		router.Handle("/metrics", m.Handler())

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(middleware.AccessLog(logger))
		api.UseMiddleware(middleware.Metrics(m))

		handlers.RegisterRoutes(api, handlers.NewURLHandler(service, publish, m, logger))
		health.RegisterRoutes(api, healthHandler)

		return api, nil
	})
}
