package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cbrates/internal/adapters/cache"
	"cbrates/internal/adapters/httpclient"
	"cbrates/internal/adapters/postgres"
	"cbrates/internal/api"
	"cbrates/internal/config"
	"cbrates/internal/platform/db"
	httpserver "cbrates/internal/platform/http"
	"cbrates/internal/rate"
	"cbrates/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

const dailyRatesCacheSize = 128

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Schema (idempotent)
	if err = db.Migrate(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Rate source client; the per-fetch timeout also caps the whole
	// HTTP exchange including body read
	fetchTimeout := time.Duration(appCfg.RateSource.TimeoutMs) * time.Millisecond
	if fetchTimeout <= 0 {
		fetchTimeout = time.Second
	}
	baseHTTPClient := &http.Client{Timeout: fetchTimeout}
	rateClient := httpclient.NewDailyRatesClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.RateSource.BaseURL, "/"),
	)

	// Repositories
	currencyRepo := postgres.NewCurrencyRepository(pool)
	rateRepo := postgres.NewRateRepository(pool)

	// Caches
	syncCache := rate.NewCache()
	dayCache, err := cache.NewDailyRatesCache(dailyRatesCacheSize)
	if err != nil {
		logrus.WithError(err).Error("Failed to create daily rates cache")
		return err
	}
	defer dayCache.Close()

	// Sync engine and scheduler
	updater := rate.NewUpdater(currencyRepo, rateRepo, rateClient, syncCache, fetchTimeout)
	scheduler := rate.NewScheduler(updater)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context; the first sync cycle runs
	// immediately
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Read side, handlers and router
	rateService := rate.NewService(rateRepo, dayCache, syncCache)
	rateValidator := rate.NewValidator(syncCache)
	rateHandler := handler.NewRateHandler(rateService, rateValidator)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
