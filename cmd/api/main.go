package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lawfirm-service/internal/api/http"
	"github.com/spec-kit/lawfirm-service/internal/api/http/handlers"
	"github.com/spec-kit/lawfirm-service/internal/auth"
	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/events"
	"github.com/spec-kit/lawfirm-service/internal/observability"
	"github.com/spec-kit/lawfirm-service/internal/persistence"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	"github.com/spec-kit/lawfirm-service/internal/service"
	"github.com/spec-kit/lawfirm-service/internal/worker"
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
	clientRepo := repository.NewClientRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	counterRepo := repository.NewCaseCounterRepository(pool)
	retainerRepo := repository.NewRetainerRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	reminderRepo := repository.NewReminderRepository(pool)
	guildConfigRepo := repository.NewGuildConfigRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ClientRepo: clientRepo,
		StaffRepo:  staffRepo,
		ResetRepo:  resetRepo,
		Tokens:     tokens,
	})
	rosterService := service.NewRosterService(*cfg, service.RosterDependencies{
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
	})
	caseService := service.NewCaseService(service.CaseDependencies{
		CaseRepo:    caseRepo,
		CounterRepo: counterRepo,
		ClientRepo:  clientRepo,
		Dispatcher:  dispatcher,
	})
	retainerService := service.NewRetainerService(service.RetainerDependencies{
		RetainerRepo: retainerRepo,
		ClientRepo:   clientRepo,
		Dispatcher:   dispatcher,
	})
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    jobRepo,
		Roster:     rosterService,
		Dispatcher: dispatcher,
	})
	reminderService := service.NewReminderService(*cfg, service.ReminderDependencies{
		ReminderRepo: reminderRepo,
		Dispatcher:   dispatcher,
	})
	guildService := service.NewGuildService(*cfg, service.GuildDependencies{
		ConfigRepo: guildConfigRepo,
		Cache:      redis,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	auditService := service.NewAuditService(service.AuditDependencies{
		AuditRepo: auditRepo,
		Logger:    logger,
	})
	auditService.Register(dispatcher)

	authMiddleware := auth.NewAuthMiddleware(tokens, clientRepo, staffRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(rosterService),
		Cases:          handlers.NewCasesHandler(caseService),
		Retainers:      handlers.NewRetainersHandler(retainerService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Reminders:      handlers.NewRemindersHandler(reminderService),
		Guilds:         handlers.NewGuildsHandler(guildService, auditService),
		AuthMiddleware: authMiddleware,
	})

	reminderWorker := worker.NewReminderWorker(*cfg, reminderService, logger)
	go reminderWorker.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
