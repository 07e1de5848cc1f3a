package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/iemarche/inquiry-service/internal/api/http"
	"github.com/iemarche/inquiry-service/internal/api/http/handlers"
	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/config"
	"github.com/iemarche/inquiry-service/internal/events"
	"github.com/iemarche/inquiry-service/internal/observability"
	"github.com/iemarche/inquiry-service/internal/persistence"
	"github.com/iemarche/inquiry-service/internal/repository"
	"github.com/iemarche/inquiry-service/internal/service"
	"github.com/iemarche/inquiry-service/internal/worker"
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
	inquiryRepo := repository.NewInquiryRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	limiter := service.NewSubmitLimiter(redis.Client, cfg.RateLimit.SubmitPerHour, logger)
	inquiryService := service.NewInquiryService(service.InquiryDependencies{
		InquiryRepo:  inquiryRepo,
		ResponseRepo: responseRepo,
		CompanyRepo:  companyRepo,
		CaseRepo:     caseRepo,
		Dispatcher:   dispatcher,
		Limiter:      limiter,
		Logger:       logger,
	})
	directoryService := service.NewDirectoryService(companyRepo, caseRepo, logger)
	tagService := service.NewTagService(tagRepo)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AdminRepo:    adminRepo,
		MemberRepo:   memberRepo,
		CustomerRepo: customerRepo,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo, memberRepo, customerRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:            handlers.NewAuthHandler(authService),
		Directory:       handlers.NewDirectoryHandler(directoryService, tagService),
		Inquiries:       handlers.NewInquiriesHandler(inquiryService),
		MemberInquiries: handlers.NewMemberInquiriesHandler(inquiryService),
		MemberCases:     handlers.NewMemberCasesHandler(directoryService),
		AdminInquiries:  handlers.NewAdminInquiriesHandler(inquiryService, directoryService),
		AdminMembers:    handlers.NewAdminMembersHandler(authService),
		AdminTags:       handlers.NewAdminTagsHandler(tagService),
		Metrics:         handlers.NewMetricsHandler(metrics),
		AuthMiddleware:  authMiddleware,
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
