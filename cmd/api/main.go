package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/planning-service/internal/api/http"
	"github.com/spec-kit/planning-service/internal/api/http/handlers"
	"github.com/spec-kit/planning-service/internal/config"
	"github.com/spec-kit/planning-service/internal/events"
	"github.com/spec-kit/planning-service/internal/observability"
	"github.com/spec-kit/planning-service/internal/persistence"
	"github.com/spec-kit/planning-service/internal/repository"
	"github.com/spec-kit/planning-service/internal/service"
	"github.com/spec-kit/planning-service/internal/worker"
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
	technicianRepo := repository.NewTechnicianRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	technicianService := service.NewTechnicianService(technicianRepo, dispatcher)
	scheduleService := service.NewScheduleService(scheduleRepo, technicianRepo, dispatcher)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		TechnicianRepo: technicianRepo,
		ScheduleRepo:   scheduleRepo,
		Dispatcher:     dispatcher,
	})
	planningService := service.NewPlanningService(ticketRepo, scheduleRepo)

	changefeed := worker.NewChangefeedWorker(redis, logger, cfg.Changefeed)
	changefeed.Start(dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Technicians: handlers.NewTechniciansHandler(technicianService),
		Schedules:   handlers.NewSchedulesHandler(scheduleService),
		Tickets:     handlers.NewTicketsHandler(ticketService),
		Planning:    handlers.NewPlanningHandler(planningService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
