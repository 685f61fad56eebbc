package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-retry"

	"github.com/mgoulart/sellerdesk-backend/api/routes"
	"github.com/mgoulart/sellerdesk-backend/internal/binding"
	"github.com/mgoulart/sellerdesk-backend/internal/catalog"
	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/internal/locations"
	"github.com/mgoulart/sellerdesk-backend/internal/orders"
	"github.com/mgoulart/sellerdesk-backend/internal/prefs"
	"github.com/mgoulart/sellerdesk-backend/pkg/config"
	"github.com/mgoulart/sellerdesk-backend/pkg/db"
	"github.com/mgoulart/sellerdesk-backend/pkg/logger"
	"github.com/mgoulart/sellerdesk-backend/pkg/metrics"
	"github.com/mgoulart/sellerdesk-backend/pkg/migrate"
	"github.com/mgoulart/sellerdesk-backend/pkg/redis"
)

const dependencyRetries = 5

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

	redisClient, err := connectRedis(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	stockMetrics := metrics.NewStockMetrics(registry)

	stockRepo := inventory.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	inventoryService, err := inventory.NewService(stockRepo, dbClient, stockMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), stockRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	locationsService, err := locations.NewService(locations.NewRepository(dbClient.DB()), stockRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create locations service", err)
		os.Exit(1)
	}

	sessionStore, err := binding.NewRedisSessionStore(redisClient, cfg.Binding.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create binding session store", err)
		os.Exit(1)
	}

	committer, err := binding.NewCommitter(dbClient, stockRepo, orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create binding committer", err)
		os.Exit(1)
	}

	coordinator, err := binding.NewCoordinator(sessionStore, orderRepo, stockRepo, committer, stockMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create binding coordinator", err)
		os.Exit(1)
	}

	prefsStore, err := prefs.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create preference store", err)
		os.Exit(1)
	}

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
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DBPinger:    dbClient,
			RedisPinger: redisClient,
			Catalog:     catalogService,
			Inventory:   inventoryService,
			Binding:     coordinator,
			Orders:      ordersService,
			Locations:   locationsService,
			Prefs:       prefsStore,
			Metrics:     registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// connectDB retries the initial connection so the api survives a
// database that comes up a few seconds later (compose, fresh dynos).
func connectDB(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*db.Client, error) {
	var client *db.Client
	backoff := retry.WithMaxRetries(dependencyRetries, retry.NewFibonacci(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Warn(ctx, "database not ready, retrying")
			return retry.RetryableError(err)
		}
		client = c
		return nil
	})
	return client, err
}

func connectRedis(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*redis.Client, error) {
	var client *redis.Client
	backoff := retry.WithMaxRetries(dependencyRetries, retry.NewFibonacci(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Warn(ctx, "redis not ready, retrying")
			return retry.RetryableError(err)
		}
		client = c
		return nil
	})
	return client, err
}
