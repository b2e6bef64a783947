package notification

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/partnerflow/partnerflow/internal/config"
)

// EmailClient wraps the Resend client used for partner-facing email
type EmailClient struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
}

// NewEmailClient creates a new email client. The client is disabled when no
// API key is configured, in which case sends fail with an error.
func NewEmailClient(cfg *config.Configuration) *EmailClient {
	if cfg.Notifications.ResendAPIKey == "" {
		return &EmailClient{
			enabled: false,
		}
	}

	client := resend.NewClient(cfg.Notifications.ResendAPIKey)

	return &EmailClient{
		client:      client,
		enabled:     true,
		fromAddress: cfg.Notifications.FromAddress,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

// SendEmail sends a plain text or HTML email
func (c *EmailClient) SendEmail(ctx context.Context, to, subject, htmlContent, textContent string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("email client is disabled")
	}

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
		Text:    textContent,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}
