package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/widget-basket/internal/config"
	"github.com/noah-isme/widget-basket/internal/obs"
	"github.com/noah-isme/widget-basket/internal/quote"
	"github.com/noah-isme/widget-basket/internal/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormatOr("json"), cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := obs.InitTracer(ctx, obs.TracingConfig{
			ServiceName:   "basket-api",
			Endpoint:      cfg.OTLPEndpoint,
			SamplingRatio: cfg.TracingSampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	cat, err := cfg.Catalog()
	if err != nil {
		logger.Fatal().Err(err).Msg("build catalog")
	}

	quoteSvc, err := quote.NewService(quote.ServiceConfig{
		Catalog:   cat,
		NewBasket: cfg.NewBasket,
		Metrics:   obs.NewQuoteMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise quote service")
	}

	lim, err := ratelimit.NewMemory(cfg.RateLimit)
	if err != nil {
		logger.Fatal().Err(err).Str("rate", cfg.RateLimit).Msg("parse rate limit")
	}

	handler := newRouter(routerDeps{
		Config:  cfg,
		Logger:  logger,
		Quotes:  &quote.Handler{Svc: quoteSvc, Validate: validator.New(validator.WithRequiredStructEnabled()), Logger: logger},
		Limiter: lim,
		Metrics: obs.NewHTTPMetrics(cfg.MetricsNamespace, nil, prometheus.DefaultRegisterer),
		Tracing: cfg.TracingEnabled,
		Ready:   readinessChecks(cat, cfg),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Int("products", cat.Len()).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Msg("server stopped")
}
