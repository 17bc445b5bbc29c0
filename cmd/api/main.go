package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/moonjaehyun/shiftroster-backend/api/routes"
	"github.com/moonjaehyun/shiftroster-backend/internal/memberships"
	"github.com/moonjaehyun/shiftroster-backend/internal/requests"
	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/internal/staffprefs"
	"github.com/moonjaehyun/shiftroster-backend/pkg/config"
	"github.com/moonjaehyun/shiftroster-backend/pkg/db"
	"github.com/moonjaehyun/shiftroster-backend/pkg/logger"
	"github.com/moonjaehyun/shiftroster-backend/pkg/metrics"
	"github.com/moonjaehyun/shiftroster-backend/pkg/migrate"
	"github.com/moonjaehyun/shiftroster-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	workflowMetrics := metrics.NewWorkflowMetrics(promRegistry)

	membershipsRepo := memberships.NewRepository(dbClient.DB())
	schedulesRepo := schedules.NewRepository(dbClient.DB())
	requestsRepo := requests.NewRepository(dbClient.DB())

	schedulesService, err := schedules.NewService(schedulesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create schedules service", err)
		os.Exit(1)
	}

	orderStore, err := staffprefs.NewOrderStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff order store", err)
		os.Exit(1)
	}
	staffService, err := staffprefs.NewService(membershipsRepo, orderStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	requestsService, err := requests.NewService(requestsRepo, schedulesRepo, dbClient, workflowMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create requests service", err)
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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			membershipsRepo,
			membershipsRepo,
			schedulesService,
			staffService,
			requestsService,
			promRegistry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
