package config

import "github.com/partnerflow/partnerflow/internal/types"

// Webhook represents the configuration for the outbound webhook system
type Webhook struct {
	Enabled    bool                              `mapstructure:"enabled"`
	Topic      string                            `mapstructure:"topic"`
	PubSub     types.PubSubType                  `mapstructure:"pubsub"`
	Svix       SvixConfig                        `mapstructure:"svix"`
	Workspaces map[string]WorkspaceWebhookConfig `mapstructure:"workspaces"`
}

// SvixConfig represents the configuration for delivering webhooks through Svix
type SvixConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	AuthToken string `mapstructure:"auth_token"`
	BaseURL   string `mapstructure:"base_url"`
}

// WorkspaceWebhookConfig represents the native webhook endpoint of a workspace
type WorkspaceWebhookConfig struct {
	Endpoint       string            `mapstructure:"endpoint"`
	Headers        map[string]string `mapstructure:"headers"`
	Enabled        bool              `mapstructure:"enabled"`
	ExcludedEvents []string          `mapstructure:"excluded_events"`
}
