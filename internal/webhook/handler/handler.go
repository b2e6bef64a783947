package handler

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/partnerflow/partnerflow/internal/config"
	"github.com/partnerflow/partnerflow/internal/httpclient"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/pubsub"
	pubsubRouter "github.com/partnerflow/partnerflow/internal/pubsub/router"
	"github.com/partnerflow/partnerflow/internal/svix"
	"github.com/partnerflow/partnerflow/internal/types"
	"github.com/partnerflow/partnerflow/internal/webhook/payload"
)

// Handler interface for processing webhook events
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

// handler implements Handler on top of the internal pubsub
type handler struct {
	pubSub     pubsub.PubSub
	config     *config.Webhook
	factory    payload.PayloadBuilderFactory
	client     httpclient.Client
	logger     *logger.Logger
	svixClient *svix.Client
}

// NewHandler creates a new webhook handler
func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	factory payload.PayloadBuilderFactory,
	client httpclient.Client,
	logger *logger.Logger,
	svixClient *svix.Client,
) (Handler, error) {
	return &handler{
		pubSub:     pubSub,
		config:     &cfg.Webhook,
		factory:    factory,
		client:     client,
		logger:     logger,
		svixClient: svixClient,
	}, nil
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"webhook_handler",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
	)
}

// processMessage processes a single webhook message
func (h *handler) processMessage(msg *message.Message) error {
	ctx := msg.Context()

	var event types.WebhookEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal webhook event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil // Don't retry on unmarshal errors
	}

	ctx = context.WithValue(ctx, types.CtxTenantID, event.TenantID)
	ctx = context.WithValue(ctx, types.CtxEnvironmentID, event.EnvironmentID)
	ctx = context.WithValue(ctx, types.CtxUserID, event.UserID)

	if h.config.Svix.Enabled {
		return h.processMessageSvix(ctx, &event, msg.UUID)
	}

	return h.processMessageNative(ctx, &event, msg.UUID)
}

// processMessageSvix delivers a webhook message through Svix
func (h *handler) processMessageSvix(ctx context.Context, event *types.WebhookEvent, messageUUID string) error {
	appID, err := h.svixClient.GetOrCreateApplication(ctx, event.TenantID, event.WorkspaceID)
	if err != nil {
		return err
	}

	builder, err := h.factory.GetBuilder(event.EventName)
	if err != nil {
		return err
	}

	webhookPayload, err := builder.BuildPayload(ctx, event.EventName, event.Payload)
	if err != nil {
		return err
	}

	if err := h.svixClient.SendMessage(ctx, appID, event.EventName, json.RawMessage(webhookPayload)); err != nil {
		h.logger.Errorw("failed to send webhook via Svix",
			"error", err,
			"message_uuid", messageUUID,
			"workspace_id", event.WorkspaceID,
			"event", event.EventName,
		)
		return err
	}

	h.logger.Infow("webhook sent successfully via Svix",
		"message_uuid", messageUUID,
		"workspace_id", event.WorkspaceID,
		"event", event.EventName,
	)

	return nil
}

// processMessageNative delivers a webhook message to the workspace's
// configured HTTP endpoint
func (h *handler) processMessageNative(ctx context.Context, event *types.WebhookEvent, messageUUID string) error {
	workspaceCfg, ok := h.config.Workspaces[event.WorkspaceID]
	if !ok {
		h.logger.Warnw("workspace webhook config not found",
			"workspace_id", event.WorkspaceID,
			"message_uuid", messageUUID,
		)
		// Don't retry if workspace not found
		return nil
	}

	if !workspaceCfg.Enabled {
		h.logger.Debugw("webhooks disabled for workspace",
			"workspace_id", event.WorkspaceID,
			"message_uuid", messageUUID,
		)
		return nil
	}

	for _, excludedEvent := range workspaceCfg.ExcludedEvents {
		if excludedEvent == event.EventName {
			h.logger.Debugw("event excluded for workspace",
				"workspace_id", event.WorkspaceID,
				"event", event.EventName,
			)
			return nil
		}
	}

	builder, err := h.factory.GetBuilder(event.EventName)
	if err != nil {
		return err
	}

	webhookPayload, err := builder.BuildPayload(ctx, event.EventName, event.Payload)
	if err != nil {
		return err
	}

	req := &httpclient.Request{
		Method:  "POST",
		URL:     workspaceCfg.Endpoint,
		Headers: workspaceCfg.Headers,
		Body:    webhookPayload,
	}

	resp, err := h.client.Send(ctx, req)
	if err != nil {
		h.logger.Errorw("failed to send webhook",
			"error", err,
			"message_uuid", messageUUID,
			"workspace_id", event.WorkspaceID,
			"event", event.EventName,
		)
		return err
	}

	h.logger.Infow("webhook sent successfully",
		"message_uuid", messageUUID,
		"workspace_id", event.WorkspaceID,
		"event", event.EventName,
		"status_code", resp.StatusCode,
	)

	return nil
}
