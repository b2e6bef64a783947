package earnings

import (
	"github.com/shopspring/decimal"

	"github.com/partnerflow/partnerflow/internal/types"
)

// Earnings is a commission record owed to a partner for a qualifying sale
type Earnings struct {
	// ID is the unique identifier for the earnings record
	ID string `db:"id" json:"id"`

	// ProgramID is the program the commission was earned under
	ProgramID string `db:"program_id" json:"program_id"`

	// PartnerID is the partner the commission is owed to
	PartnerID string `db:"partner_id" json:"partner_id"`

	// LinkID is the referral link that drove the sale
	LinkID string `db:"link_id" json:"link_id"`

	// SaleEventID ties the commission back to the recorded sale event
	SaleEventID string `db:"sale_event_id" json:"sale_event_id"`

	// InvoiceID is the payment provider's invoice id for the sale
	InvoiceID string `db:"invoice_id" json:"invoice_id"`

	// Amount is the sale amount the commission was computed from,
	// in minor currency units
	Amount int64 `db:"amount" json:"amount"`

	// Earnings is the computed commission owed to the partner
	Earnings decimal.Decimal `db:"earnings" json:"earnings"`

	// Currency is the ISO 4217 currency code of the sale
	Currency string `db:"currency" json:"currency"`

	// PayoutStatus tracks the payout lifecycle of this record
	PayoutStatus types.EarningsStatus `db:"payout_status" json:"payout_status"`

	types.BaseModel
}
