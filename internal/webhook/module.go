package webhook

import (
	"go.uber.org/fx"

	"github.com/partnerflow/partnerflow/internal/config"
	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/link"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/pubsub"
	"github.com/partnerflow/partnerflow/internal/pubsub/memory"
	"github.com/partnerflow/partnerflow/internal/types"
	"github.com/partnerflow/partnerflow/internal/webhook/handler"
	"github.com/partnerflow/partnerflow/internal/webhook/payload"
	"github.com/partnerflow/partnerflow/internal/webhook/publisher"
)

// Module provides all webhook-related dependencies
var Module = fx.Options(
	fx.Provide(
		// PubSub for sending webhook events
		providePubSub,
	),

	fx.Provide(
		// Publisher for sending webhook events
		publisher.NewPublisher,

		// Handler for processing webhook events
		handler.NewHandler,

		// Payload builder factory and services
		providePayloadBuilderFactory,

		// Main webhook service
		NewWebhookService,
	),
)

// providePayloadBuilderFactory creates a new payload builder factory with all
// required repositories
func providePayloadBuilderFactory(
	customerRepo customer.Repository,
	linkRepo link.Repository,
) payload.PayloadBuilderFactory {
	services := payload.NewServices(
		customerRepo,
		linkRepo,
	)
	return payload.NewPayloadBuilderFactory(services)
}

func providePubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) pubsub.PubSub {
	switch cfg.Webhook.PubSub {
	case types.MemoryPubSub:
		return memory.NewPubSub(cfg, logger)
	}
	panic("unsupported pubsub type")
}
