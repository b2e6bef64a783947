package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/partnerflow/partnerflow/internal/api"
	v1 "github.com/partnerflow/partnerflow/internal/api/v1"
	"github.com/partnerflow/partnerflow/internal/cache"
	"github.com/partnerflow/partnerflow/internal/clickhouse"
	"github.com/partnerflow/partnerflow/internal/config"
	"github.com/partnerflow/partnerflow/internal/dedup"
	"github.com/partnerflow/partnerflow/internal/httpclient"
	stripewebhook "github.com/partnerflow/partnerflow/internal/integration/stripe"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/notification"
	"github.com/partnerflow/partnerflow/internal/postgres"
	pubsubRouter "github.com/partnerflow/partnerflow/internal/pubsub/router"
	"github.com/partnerflow/partnerflow/internal/repository"
	"github.com/partnerflow/partnerflow/internal/service"
	"github.com/partnerflow/partnerflow/internal/svix"
	"github.com/partnerflow/partnerflow/internal/taskrunner"
	"github.com/partnerflow/partnerflow/internal/validator"
	"github.com/partnerflow/partnerflow/internal/webhook"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewClient,

			// Clickhouse
			clickhouse.NewClient,

			// Redis-backed idempotency claims
			dedup.NewRedisClient,
			dedup.NewRedisClaimer,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Svix
			svix.NewClient,

			// Repositories
			repository.NewEventRepository,
			repository.NewCustomerRepository,
			repository.NewLinkRepository,
			repository.NewWorkspaceRepository,
			repository.NewProgramRepository,
			repository.NewEarningsRepository,

			// Background tasks
			taskrunner.NewRunner,

			// Partner notifications
			notification.NewEmailClient,
			notification.NewPartnerNotifier,

			// PubSub router
			pubsubRouter.NewRouter,
		),
	)

	// Webhook module (must be initialised before services)
	opts = append(opts, webhook.Module)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewBillingService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			stripewebhook.NewWebhookProcessor,
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	processor *stripewebhook.WebhookProcessor,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		Webhook: v1.NewWebhookHandler(cfg, logger, processor),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	webhookService *webhook.WebhookService,
	router *pubsubRouter.Router,
	runner taskrunner.Runner,
	log *logger.Logger,
) {
	startAPIServer(lc, r, cfg, log)
	startMessageRouter(lc, router, webhookService, log)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("draining detached tasks")
			runner.Shutdown()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	webhookService *webhook.WebhookService,
	logger *logger.Logger,
) {
	// Register handlers before starting the router
	webhookService.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting message router")
			go func() {
				if err := router.Run(); err != nil {
					logger.Errorw("message router failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping message router")
			if err := router.Close(); err != nil {
				return err
			}
			return webhookService.Stop()
		},
	})
}
