package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/partnerflow/partnerflow/internal/config"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/service"
	"github.com/partnerflow/partnerflow/internal/types"
)

// WebhookProcessor verifies and dispatches inbound Stripe webhook events
type WebhookProcessor struct {
	config  *config.Configuration
	logger  *logger.Logger
	billing service.BillingService
}

// NewWebhookProcessor creates a new Stripe webhook processor
func NewWebhookProcessor(
	cfg *config.Configuration,
	logger *logger.Logger,
	billing service.BillingService,
) *WebhookProcessor {
	return &WebhookProcessor{
		config:  cfg,
		logger:  logger,
		billing: billing,
	}
}

// ParseWebhookEvent parses a Stripe webhook event with signature verification
func (p *WebhookProcessor) ParseWebhookEvent(payload []byte, signature string) (*stripe.Event, error) {
	// Verify the webhook signature, ignoring API version mismatch
	options := webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.config.Stripe.WebhookSecret, options)
	if err != nil {
		p.logger.Errorw("Stripe webhook verification failed", "error", err)
		return nil, ierr.NewError("failed to verify webhook signature").
			WithHint("Invalid webhook signature or payload").
			Mark(ierr.ErrValidation)
	}
	return &event, nil
}

// HandleEvent dispatches a verified Stripe event by type. Event types without
// a registered handler are acknowledged with a status string, not an error,
// so the provider does not retry them.
func (p *WebhookProcessor) HandleEvent(ctx context.Context, event *stripe.Event) (string, error) {
	switch types.ProviderEventType(event.Type) {
	case types.ProviderEventTypeInvoicePaid:
		return p.handleInvoicePaid(ctx, event)
	default:
		p.logger.Debugw("unhandled Stripe event type",
			"event_id", event.ID,
			"event_type", event.Type,
		)
		return fmt.Sprintf("Unhandled event type: %s", event.Type), nil
	}
}

func (p *WebhookProcessor) handleInvoicePaid(ctx context.Context, event *stripe.Event) (string, error) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return "", ierr.WithError(err).
			WithHint("Unable to parse invoice from Stripe event").
			WithReportableDetails(map[string]any{
				"event_id": event.ID,
			}).
			Mark(ierr.ErrValidation)
	}

	if invoice.Customer == nil || invoice.Customer.ID == "" {
		return "", ierr.NewError("invoice has no customer").
			WithHint("Stripe invoice events must reference a customer").
			WithReportableDetails(map[string]any{
				"event_id":   event.ID,
				"invoice_id": invoice.ID,
			}).
			Mark(ierr.ErrValidation)
	}

	return p.billing.HandleInvoicePaid(ctx, &service.InvoicePaidEvent{
		ExternalCustomerID: invoice.Customer.ID,
		InvoiceID:          invoice.ID,
		AmountPaid:         invoice.AmountPaid,
		Currency:           string(invoice.Currency),
		PaymentProcessor:   types.PaymentProcessorStripe,
		RawInvoice:         event.Data.Raw,
	})
}
