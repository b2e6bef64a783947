package svix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	svix "github.com/svix/svix-webhooks/go"
	"github.com/svix/svix-webhooks/go/models"

	"github.com/partnerflow/partnerflow/internal/config"
)

// Client wraps the Svix SDK client used for outbound webhook delivery
type Client struct {
	client  *svix.Svix
	baseURL string
	enabled bool
}

// NewClient creates a new Svix client
func NewClient(config *config.Configuration) (*Client, error) {
	if !config.Webhook.Svix.Enabled {
		return &Client{
			enabled: false,
		}, nil
	}

	serverURL, err := url.Parse(config.Webhook.Svix.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	svixClient, err := svix.New(config.Webhook.Svix.AuthToken, &svix.SvixOptions{
		ServerUrl: serverURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create svix client: %w", err)
	}

	return &Client{
		client:  svixClient,
		baseURL: config.Webhook.Svix.BaseURL,
		enabled: true,
	}, nil
}

// Enabled reports whether Svix delivery is configured
func (c *Client) Enabled() bool {
	return c.enabled && c.client != nil
}

// GetOrCreateApplication gets or creates a Svix application for the given workspace
func (c *Client) GetOrCreateApplication(ctx context.Context, tenantID, workspaceID string) (string, error) {
	if !c.Enabled() {
		return "", nil
	}

	appID := fmt.Sprintf("%s_%s", tenantID, workspaceID)

	// Try to get existing application
	_, err := c.client.Application.Get(ctx, appID)
	if err == nil {
		return appID, nil
	}

	// Create new application if it doesn't exist
	app, err := c.client.Application.Create(ctx, models.ApplicationIn{
		Name: appID,
		Uid:  &appID,
	}, &svix.ApplicationCreateOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to create application: %w", err)
	}

	return app.Id, nil
}

// SendMessage sends a webhook message to the given application
func (c *Client) SendMessage(ctx context.Context, applicationID string, eventType string, payload interface{}) error {
	if !c.Enabled() {
		return nil
	}

	var payloadMap map[string]interface{}

	switch p := payload.(type) {
	case map[string]interface{}:
		payloadMap = p
	case json.RawMessage:
		if err := json.Unmarshal(p, &payloadMap); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		if err := json.Unmarshal(raw, &payloadMap); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	_, err := c.client.Message.Create(ctx, applicationID, models.MessageIn{
		EventType: eventType,
		Payload:   payloadMap,
	}, &svix.MessageCreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
