package workspace

import (
	"github.com/partnerflow/partnerflow/internal/types"
)

// Workspace represents a customer-facing project that owns links, customers
// and webhooks
type Workspace struct {
	// ID is the unique identifier for the workspace
	ID string `db:"id" json:"id"`

	// Name is the display name of the workspace
	Name string `db:"name" json:"name"`

	// Slug is the unique URL slug of the workspace
	Slug string `db:"slug" json:"slug"`

	// Usage is the number of tracked conversion events counted against the
	// workspace's plan in the current period
	Usage int64 `db:"usage" json:"usage"`

	// SalesUsage is the total tracked sale revenue (minor currency units)
	// counted against the workspace's plan in the current period
	SalesUsage int64 `db:"sales_usage" json:"sales_usage"`

	// WebhookEnabled reports whether the workspace has any active webhook
	WebhookEnabled bool `db:"webhook_enabled" json:"webhook_enabled"`

	types.BaseModel
}
