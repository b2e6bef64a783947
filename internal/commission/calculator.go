package commission

import (
	"github.com/shopspring/decimal"

	"github.com/partnerflow/partnerflow/internal/domain/program"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/types"
)

var hundred = decimal.NewFromInt(100)

// Sale carries the inputs of a single commission computation
type Sale struct {
	// Amount paid, in minor currency units
	Amount int64
	// Currency is the ISO 4217 currency code of the sale
	Currency string
	// InvoiceID is the payment provider's invoice id
	InvoiceID string
}

// Calculate computes the partner earnings for a sale under an enrollment's
// commission rule. Pure and deterministic: no I/O, no clock.
//
// Flat rules pay the fixed commission amount per sale; percentage rules pay
// that share of the sale amount, rounded to 4 decimal places the way payout
// ledgers store fractional minor units.
func Calculate(enrollment *program.Enrollment, sale Sale) (decimal.Decimal, error) {
	saleAmount := decimal.NewFromInt(sale.Amount)

	switch enrollment.CommissionType {
	case types.CommissionTypeFlat:
		return enrollment.CommissionAmount, nil
	case types.CommissionTypePercentage:
		return saleAmount.Mul(enrollment.CommissionAmount).Div(hundred).Round(4), nil
	default:
		return decimal.Zero, ierr.NewError("unknown commission type").
			WithHintf("Commission type %s is not supported", enrollment.CommissionType).
			WithReportableDetails(map[string]any{
				"enrollment_id":   enrollment.ID,
				"commission_type": enrollment.CommissionType,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
}
