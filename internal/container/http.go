package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/analytics"
	"github.com/serroba/url-shortener/internal/handlers"
	"github.com/serroba/url-shortener/internal/health"
	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/serroba/url-shortener/internal/middleware"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/store"
	"go.uber.org/zap"
)

const metricsPath = "/api/metrics"

func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*prometheus.Registry, error) {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		return registry, nil
	})

	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		registry := do.MustInvoke[*prometheus.Registry](i)

		router := chi.NewMux()
		router.Use(chimw.RequestID)
		router.Use(chimw.Recoverer)
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Admin-Key"},
			MaxAge:         300,
		}))
		router.Use(middleware.RequestLogger(logger))
		router.Use(middleware.NewMetrics(registry).Handler)

		// Under /api so it cannot shadow a short code.
		router.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		allocator, err := do.Invoke[*shortener.Allocator](i)
		if err != nil {
			return nil, err
		}

		resolver, err := do.Invoke[*shortener.Resolver](i)
		if err != nil {
			return nil, err
		}

		publishCreated, err := do.Invoke[messaging.Publish[analytics.LinkCreatedEvent]](i)
		if err != nil {
			return nil, err
		}

		repo := do.MustInvoke[shortener.Repository](i)
		pgStore := do.MustInvoke[*store.PostgresStore](i)

		var cache health.Checker
		if rc := do.MustInvoke[*RedisClient](i); rc.Enabled() {
			cache = health.NewRedisChecker(rc.Client)
		}

		handlers.UseMessageErrors()

		api := humachi.New(router, handlers.APIConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		handlers.RegisterRoutes(api,
			handlers.NewURLHandler(allocator, resolver, publishCreated, logger),
			handlers.NewAdminHandler(repo, opts.AdminKey, logger),
		)
		health.RegisterRoutes(api, health.NewHandler(pgStore, cache))

		return api, nil
	})
}
