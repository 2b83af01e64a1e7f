package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/widget-basket/internal/catalog"
	"github.com/noah-isme/widget-basket/internal/common"
	"github.com/noah-isme/widget-basket/internal/config"
	"github.com/noah-isme/widget-basket/internal/health"
	"github.com/noah-isme/widget-basket/internal/obs"
	"github.com/noah-isme/widget-basket/internal/quote"
	"github.com/noah-isme/widget-basket/internal/ratelimit"
)

type routerDeps struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Quotes  *quote.Handler
	Limiter ratelimit.Limiter
	Metrics *obs.HTTPMetrics
	Tracing bool
	// TracerProvider backs request spans; nil means the global provider.
	TracerProvider trace.TracerProvider
	Ready          []health.Checker
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer http.Handler
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if deps.Tracing {
		r.Use(obs.Tracing{Provider: deps.TracerProvider}.Middleware)
	}
	if deps.Metrics != nil {
		r.Use(obs.HTTPObs{Metrics: deps.Metrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: deps.Logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(deps.Config),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	metricsHandler := deps.Gatherer
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	healthHandler := health.Handler{Checkers: deps.Ready}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	limited := ratelimit.Handler{
		Limiter: deps.Limiter,
		Key:     clientKey(deps.Config),
		OnError: func(err error) { deps.Logger.Warn().Err(err).Msg("rate limiter unavailable") },
	}
	r.Route("/v1", func(v chi.Router) {
		v.Group(func(g chi.Router) {
			g.Use(limited.Middleware)
			deps.Quotes.Routes(g)
		})
	})
	return r
}

// clientKey identifies callers by socket peer unless a trusted proxy in front
// of the service sets the forwarding headers.
func clientKey(cfg *config.Config) func(*http.Request) string {
	if cfg != nil && cfg.TrustProxyHeaders {
		return common.ClientIP
	}
	return common.RemoteIP
}

func allowedOrigins(cfg *config.Config) []string {
	if cfg == nil || len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func readinessChecks(cat *catalog.Catalog, cfg *config.Config) []health.Checker {
	return []health.Checker{
		health.CheckFunc{Label: "catalog", Fn: func(context.Context) error {
			if cat.Len() == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		}},
		health.CheckFunc{Label: "basket", Fn: func(context.Context) error {
			_, err := cfg.NewBasket(cat)
			return err
		}},
	}
}
