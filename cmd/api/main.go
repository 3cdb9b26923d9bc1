package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/daypass-backend/api"
	"github.com/angelmondragon/daypass-backend/api/routes"
	"github.com/angelmondragon/daypass-backend/internal/auth"
	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/internal/storefront"
	"github.com/angelmondragon/daypass-backend/internal/users"
	"github.com/angelmondragon/daypass-backend/pkg/auth/session"
	"github.com/angelmondragon/daypass-backend/pkg/config"
	"github.com/angelmondragon/daypass-backend/pkg/db"
	"github.com/angelmondragon/daypass-backend/pkg/instance"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/metrics"
	"github.com/angelmondragon/daypass-backend/pkg/migrate"
	"github.com/angelmondragon/daypass-backend/pkg/redis"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	obs := routes.Observability{}
	var (
		catalogMetrics *metrics.CatalogMetrics
		quoteMetrics   *metrics.QuoteMetrics
	)
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		obs.HTTP = metrics.NewHTTPMetrics(registry, cfg.Metrics.Namespace)
		obs.Handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
		catalogMetrics = metrics.NewCatalogMetrics(registry, cfg.Metrics.Namespace)
		quoteMetrics = metrics.NewQuoteMetrics(registry, cfg.Metrics.Namespace)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		AllowSignUp:    cfg.FeatureFlags.AllowSignUp,
		Logger:         logg,
	})
	if err != nil {
		return err
	}

	catalogRepo := catalog.NewRepository(dbClient.DB(), dbClient)
	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Store:   catalogRepo,
		Metrics: catalogMetrics,
		Logger:  logg,
	})
	if err != nil {
		return err
	}

	storefrontService, err := storefront.NewService(storefront.ServiceParams{
		Store:   catalogRepo,
		Metrics: quoteMetrics,
		Logger:  logg,
	})
	if err != nil {
		return err
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		dbClient,
		redisClient,
		sessionManager,
		obs,
		authService,
		catalogService,
		storefrontService,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.ID(),
	})
	logg.Info(logCtx, "starting api server")

	return api.Serve(ctx, api.NewServer(addr, cfg.HTTP, handler), cfg.HTTP.ShutdownTimeout, logg)
}
