package customer

import (
	"time"

	"github.com/partnerflow/partnerflow/internal/types"
)

// Customer represents a tracked end customer attributed to a referral link
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// ExternalID is the identifier of the customer in the payment provider (e.g. Stripe)
	ExternalID string `db:"external_id" json:"external_id"`

	// WorkspaceID is the workspace (project) the customer belongs to
	WorkspaceID string `db:"workspace_id" json:"workspace_id"`

	// Name is the name of the customer
	Name string `db:"name" json:"name"`

	// Email is the email of the customer
	Email string `db:"email" json:"email"`

	// ClickedAt is the time of the first tracked click that attributed this
	// customer, when known
	ClickedAt *time.Time `db:"clicked_at" json:"clicked_at,omitempty"`

	// Metadata
	Metadata types.Metadata `db:"metadata" json:"metadata"`

	// EnvironmentID is the environment identifier for the customer
	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

// AttributionTime returns the click timestamp to report for this customer,
// preferring the first tracked click and falling back to account creation
func (c *Customer) AttributionTime() time.Time {
	if c.ClickedAt != nil && !c.ClickedAt.IsZero() {
		return *c.ClickedAt
	}
	return c.CreatedAt
}
