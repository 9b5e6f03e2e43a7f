package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/queue-monitor/internal/alert"
	httptransport "github.com/spec-kit/queue-monitor/internal/api/http"
	"github.com/spec-kit/queue-monitor/internal/api/http/handlers"
	"github.com/spec-kit/queue-monitor/internal/audio"
	"github.com/spec-kit/queue-monitor/internal/auth"
	"github.com/spec-kit/queue-monitor/internal/config"
	"github.com/spec-kit/queue-monitor/internal/observability"
	"github.com/spec-kit/queue-monitor/internal/persistence"
	"github.com/spec-kit/queue-monitor/internal/realtime"
	"github.com/spec-kit/queue-monitor/internal/repository"
	"github.com/spec-kit/queue-monitor/internal/service"
	"github.com/spec-kit/queue-monitor/internal/settings"
	"github.com/spec-kit/queue-monitor/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	store := settings.NewStore(cfg.Alerting, cfg.Sound)

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	stageRepo := repository.NewStageRepository(pool)

	queue := service.NewQueueService(ticketRepo, stageRepo, store, cfg.Alerting.DisplayRefresh(), logger)
	if err := queue.Refresh(ctx); err != nil {
		logger.Warn("initial snapshot load failed", zap.Error(err))
	}

	dismissals := alert.NewDismissalTracker()
	monitor := alert.NewMonitor(queue.Tickets, dismissals, store, cfg.Alerting.ScanInterval(), logger, metrics)

	sink := audio.NewExecSink(cfg.Sound.PlayerCommand, logger)
	subsystem := audio.NewSubsystem(cfg.Sound.Dir, sink, logger)
	dispatcher := audio.NewDispatcher(subsystem, store, logger, metrics)
	if cfg.Sound.PreloadOnStart {
		subsystem.PreloadAll(audio.KnownSounds)
		dispatcher.Warm()
	}

	toasts := service.NewToastLog(20, logger)
	stream := realtime.NewRedisStream(redis.Client, logger)
	bridge := realtime.NewBridge(stream, cfg.Redis.TicketChannel, func() {
		if err := queue.Refresh(ctx); err != nil {
			logger.Error("snapshot refresh failed", zap.Error(err))
			return
		}
		monitor.Scan()
	}, dispatcher, toasts, logger, metrics)

	workers := worker.New(queue, monitor, bridge, logger)
	workers.Start(ctx)
	defer workers.Stop()

	authMiddleware := auth.NewAuthMiddleware(auth.NewTokenValidator(cfg.Auth.JWTSecret))

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Queue:          handlers.NewQueueHandler(queue, toasts),
		Alert:          handlers.NewAlertHandler(monitor, dismissals, queue, toasts),
		Audio:          handlers.NewAudioHandler(subsystem, dispatcher),
		Settings:       handlers.NewSettingsHandler(store),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	workers.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
