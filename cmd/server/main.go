package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/spacematch/internal/app"
	"github.com/oggyb/spacematch/internal/cache"
	"github.com/oggyb/spacematch/internal/config"
	"github.com/oggyb/spacematch/internal/db"
	"github.com/oggyb/spacematch/internal/logger"
	"github.com/oggyb/spacematch/internal/notify"
	"github.com/oggyb/spacematch/internal/server"
	"github.com/oggyb/spacematch/internal/service/spacematch"
)

func main() {
	if err := run(); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return err
	}
	defer redisCache.Client.Close()

	// in-process event bus until a broker is configured
	bus := notify.NewGoChannel(logger.Component(log, "notify"))
	defer bus.Close()
	notifier := notify.NewPublisher(bus, logger.Component(log, "notify"))

	appCtx := app.New(cfg, database, redisCache, notifier, log)

	if cfg.App.Env == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		ops := server.NewOpsRouter(map[string]server.Pinger{
			"db":    server.PingFunc(sqlDB.PingContext),
			"redis": redisCache,
		})
		g.Go(func() error {
			return server.StartOpsServer(ctx, cfg.Metrics.Addr, ops, logger.Component(log, "ops"))
		})
	}

	g.Go(func() error {
		return server.StartGRPCServer(ctx, cfg, logger.Component(log, "grpc"), spacematch.NewRegistrar(appCtx))
	})

	return g.Wait()
}
