package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partnerflow/partnerflow/internal/config"
	stripewebhook "github.com/partnerflow/partnerflow/internal/integration/stripe"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/types"
)

// WebhookHandler handles inbound payment provider webhooks
type WebhookHandler struct {
	config    *config.Configuration
	logger    *logger.Logger
	processor *stripewebhook.WebhookProcessor
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(
	cfg *config.Configuration,
	logger *logger.Logger,
	processor *stripewebhook.WebhookProcessor,
) *WebhookHandler {
	return &WebhookHandler{
		config:    cfg,
		logger:    logger,
		processor: processor,
	}
}

// HandleStripeWebhook verifies and processes an inbound Stripe webhook event.
// Expected skip conditions are acknowledged with 200 so Stripe does not
// retry; only unexpected collaborator failures return 500.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	environmentID := c.Param("environment_id")

	if tenantID == "" || environmentID == "" {
		h.logger.Errorw("missing tenant_id or environment_id in webhook URL")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "tenant_id and environment_id are required",
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Errorw("failed to read request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.logger.Errorw("missing Stripe-Signature header")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing Stripe-Signature header",
		})
		return
	}

	if h.config.Stripe.WebhookSecret == "" {
		h.logger.Errorw("webhook secret not configured for Stripe")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Webhook secret not configured",
		})
		return
	}

	ctx := types.SetTenantID(c.Request.Context(), tenantID)
	ctx = types.SetEnvironmentID(ctx, environmentID)

	event, err := h.processor.ParseWebhookEvent(body, signature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid webhook signature",
		})
		return
	}

	h.logger.Debugw("processing Stripe webhook",
		"event_id", event.ID,
		"event_type", event.Type,
		"tenant_id", tenantID,
		"environment_id", environmentID,
	)

	result, err := h.processor.HandleEvent(ctx, event)
	if err != nil {
		h.logger.Errorw("failed to process Stripe webhook",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process webhook event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result,
	})
}
