package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/darshak-ai/restaurant-platform/api/middleware"
	"github.com/darshak-ai/restaurant-platform/api/routes"
	"github.com/darshak-ai/restaurant-platform/internal/cart"
	"github.com/darshak-ai/restaurant-platform/internal/checkout"
	"github.com/darshak-ai/restaurant-platform/internal/orders"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/config"
	"github.com/darshak-ai/restaurant-platform/pkg/db"
	"github.com/darshak-ai/restaurant-platform/pkg/env"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/metrics"
	"github.com/darshak-ai/restaurant-platform/pkg/redis"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var closers []func() error

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	closers = append(closers, redisClient.Close)

	pingers := map[string]func(r *http.Request) error{
		"redis": func(r *http.Request) error { return redisClient.Ping(r.Context()) },
	}

	var snapshots state.Snapshotter
	if cfg.DB.Configured() {
		dbClient, dbErr := db.New(context.Background(), cfg.DB, logg)
		if dbErr != nil {
			logg.Error(context.Background(), "failed to bootstrap database", dbErr)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		pingers["database"] = func(r *http.Request) error { return dbClient.Ping(r.Context()) }

		snapshots, err = state.NewDBSnapshotter(context.Background(), dbClient)
		if err != nil {
			logg.Error(context.Background(), "failed to prepare snapshot store", err)
			os.Exit(1)
		}
	} else {
		snapshots, err = state.NewRedisSnapshotter(redisClient, cfg.Session.TTL)
		if err != nil {
			logg.Error(context.Background(), "failed to prepare snapshot store", err)
			os.Exit(1)
		}
	}

	states, err := state.NewStore(snapshots, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create state store", err)
		os.Exit(1)
	}

	taxRate, err := decimal.NewFromString(cfg.Checkout.TaxRate)
	if err != nil {
		logg.Warn(context.Background(), "invalid tax rate configured, using default")
		taxRate = cart.DefaultTaxRate
	}

	api, err := upstream.NewClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.Timeout,
		upstream.WithTokenSource(upstream.TokenFunc(func(ctx context.Context) string {
			sessionID := middleware.SessionIDFromContext(ctx)
			if sessionID == "" {
				return ""
			}
			return states.Token(ctx, sessionID)
		})),
		upstream.WithMetrics(metrics.NewUpstreamMetrics(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create restaurant API client", err)
		os.Exit(1)
	}

	sessions, err := session.NewService(api, states, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}
	observer, err := session.NewObserver(states, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session observer", err)
		os.Exit(1)
	}
	checkoutSvc, err := checkout.NewService(api, cfg.Checkout.ProcessingDelay, cfg.Checkout.OTPLength, cfg.OTPBypassEnabled())
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	reporter, err := orders.NewReporter(api)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics reporter", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			API:        api,
			States:     states,
			Sessions:   sessions,
			Observer:   observer,
			Checkout:   checkoutSvc,
			Reporter:   reporter,
			Idempotent: redisClient,
			TaxRate:    taxRate,
			Pingers:    pingers,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "gateway stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	var closeErr error
	for _, closeFn := range closers {
		closeErr = multierr.Append(closeErr, closeFn())
	}
	if closeErr != nil {
		logg.Error(ctx, "error closing clients", closeErr)
	}
}
