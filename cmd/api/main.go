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
	"github.com/sethvargo/go-retry"

	"github.com/stockpilothq/stockpilot-backend/api/routes"
	"github.com/stockpilothq/stockpilot-backend/internal/auth"
	"github.com/stockpilothq/stockpilot-backend/internal/catalog"
	"github.com/stockpilothq/stockpilot-backend/internal/orders"
	"github.com/stockpilothq/stockpilot-backend/internal/products"
	"github.com/stockpilothq/stockpilot-backend/internal/promotions"
	"github.com/stockpilothq/stockpilot-backend/internal/reports"
	"github.com/stockpilothq/stockpilot-backend/internal/users"
	"github.com/stockpilothq/stockpilot-backend/pkg/config"
	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	"github.com/stockpilothq/stockpilot-backend/pkg/logger"
	"github.com/stockpilothq/stockpilot-backend/pkg/metrics"
	"github.com/stockpilothq/stockpilot-backend/pkg/migrate"
	"github.com/stockpilothq/stockpilot-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := connectDB(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	userRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	promotionRepo := promotions.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	reportRepo := reports.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	exitOnError(logg, "failed to create auth service", err)

	catalogService, err := catalog.NewService(catalogRepo)
	exitOnError(logg, "failed to create catalog service", err)

	productService, err := products.NewService(productRepo, catalogRepo)
	exitOnError(logg, "failed to create product service", err)

	promotionService, err := promotions.NewService(promotionRepo, productRepo)
	exitOnError(logg, "failed to create promotion service", err)

	orderService, err := orders.NewService(orderRepo, dbClient, products.NewStockAdjuster(), productRepo)
	exitOnError(logg, "failed to create order service", err)

	reportService, err := reports.NewService(reportRepo, cfg.Reporting.WindowDays)
	exitOnError(logg, "failed to create report service", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient, httpMetrics,
			authService, productService, catalogService,
			promotionService, orderService, reportService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

// connectDB retries the initial connection so the API survives the database
// coming up a moment later.
func connectDB(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*db.Client, error) {
	attempts := cfg.DB.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	base := cfg.DB.ConnectBackoff
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))

	var client *db.Client
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		client, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Warn(ctx, "database not ready, retrying")
			return retry.RetryableError(err)
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			logg.Warn(ctx, "database ping failed, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func exitOnError(logg *logger.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
