package program

import (
	"github.com/shopspring/decimal"

	"github.com/partnerflow/partnerflow/internal/types"
)

// Program represents a partner program run by a workspace
type Program struct {
	// ID is the unique identifier for the program
	ID string `db:"id" json:"id"`

	// WorkspaceID is the workspace that runs the program
	WorkspaceID string `db:"workspace_id" json:"workspace_id"`

	// Name is the display name of the program
	Name string `db:"name" json:"name"`

	// Slug is the unique URL slug of the program
	Slug string `db:"slug" json:"slug"`

	// Domain is the short domain partner links are created under
	Domain string `db:"domain" json:"domain"`

	types.BaseModel
}

// Enrollment associates a partner with a program through one or more links
type Enrollment struct {
	// ID is the unique identifier for the enrollment
	ID string `db:"id" json:"id"`

	// ProgramID is the program the partner is enrolled in
	ProgramID string `db:"program_id" json:"program_id"`

	// PartnerID identifies the enrolled partner
	PartnerID string `db:"partner_id" json:"partner_id"`

	// PartnerName and PartnerEmail are denormalized for notifications
	PartnerName  string `db:"partner_name" json:"partner_name"`
	PartnerEmail string `db:"partner_email" json:"partner_email"`

	// LinkID is the referral link that accrues commission under this enrollment
	LinkID string `db:"link_id" json:"link_id"`

	// CommissionType determines how CommissionAmount is interpreted:
	// a flat amount in minor currency units or a percentage of the sale
	CommissionType types.CommissionType `db:"commission_type" json:"commission_type"`

	// CommissionAmount is the fixed rule parameter of the enrollment
	CommissionAmount decimal.Decimal `db:"commission_amount" json:"commission_amount"`

	types.BaseModel
}
