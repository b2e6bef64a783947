package webhook

import (
	"github.com/partnerflow/partnerflow/internal/config"
	"github.com/partnerflow/partnerflow/internal/logger"
	pubsubRouter "github.com/partnerflow/partnerflow/internal/pubsub/router"
	"github.com/partnerflow/partnerflow/internal/webhook/handler"
	"github.com/partnerflow/partnerflow/internal/webhook/publisher"
)

// WebhookService orchestrates webhook operations
type WebhookService struct {
	config    *config.Configuration
	publisher publisher.WebhookPublisher
	handler   handler.Handler
	logger    *logger.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	cfg *config.Configuration,
	publisher publisher.WebhookPublisher,
	h handler.Handler,
	l *logger.Logger,
) *WebhookService {
	return &WebhookService{
		config:    cfg,
		publisher: publisher,
		handler:   h,
		logger:    l,
	}
}

// RegisterHandler registers the webhook consumer on the message router.
// Must be called before the router starts.
func (s *WebhookService) RegisterHandler(router *pubsubRouter.Router) {
	if !s.config.Webhook.Enabled {
		s.logger.Info("webhook service disabled")
		return
	}
	s.handler.RegisterHandler(router)
}

// Stop closes the webhook publisher
func (s *WebhookService) Stop() error {
	if err := s.publisher.Close(); err != nil {
		s.logger.Errorw("failed to close webhook publisher", "error", err)
		return err
	}
	s.logger.Info("webhook service stopped successfully")
	return nil
}
