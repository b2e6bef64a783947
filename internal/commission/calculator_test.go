package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/partnerflow/partnerflow/internal/domain/program"
	"github.com/partnerflow/partnerflow/internal/types"
)

func TestCalculateFlat(t *testing.T) {
	enrollment := &program.Enrollment{
		ID:               "pge_1",
		CommissionType:   types.CommissionTypeFlat,
		CommissionAmount: decimal.NewFromInt(250),
	}

	earned, err := Calculate(enrollment, Sale{Amount: 500, Currency: "usd", InvoiceID: "in_1"})
	assert.NoError(t, err)
	assert.True(t, earned.Equal(decimal.NewFromInt(250)), "expected 250, got %s", earned)

	// Flat commission does not scale with the sale amount
	earned, err = Calculate(enrollment, Sale{Amount: 100000, Currency: "usd", InvoiceID: "in_2"})
	assert.NoError(t, err)
	assert.True(t, earned.Equal(decimal.NewFromInt(250)))
}

func TestCalculatePercentage(t *testing.T) {
	enrollment := &program.Enrollment{
		ID:               "pge_1",
		CommissionType:   types.CommissionTypePercentage,
		CommissionAmount: decimal.NewFromInt(30),
	}

	earned, err := Calculate(enrollment, Sale{Amount: 500, Currency: "usd", InvoiceID: "in_1"})
	assert.NoError(t, err)
	assert.True(t, earned.Equal(decimal.NewFromInt(150)), "expected 150, got %s", earned)
}

func TestCalculatePercentageRounding(t *testing.T) {
	enrollment := &program.Enrollment{
		ID:               "pge_1",
		CommissionType:   types.CommissionTypePercentage,
		CommissionAmount: decimal.NewFromFloat(33.33),
	}

	earned, err := Calculate(enrollment, Sale{Amount: 999, Currency: "usd", InvoiceID: "in_1"})
	assert.NoError(t, err)
	// 999 * 33.33 / 100 = 332.9667
	assert.True(t, earned.Equal(decimal.NewFromFloat(332.9667)), "expected 332.9667, got %s", earned)
}

func TestCalculateZeroPercentage(t *testing.T) {
	enrollment := &program.Enrollment{
		ID:               "pge_1",
		CommissionType:   types.CommissionTypePercentage,
		CommissionAmount: decimal.Zero,
	}

	earned, err := Calculate(enrollment, Sale{Amount: 500, Currency: "usd", InvoiceID: "in_1"})
	assert.NoError(t, err)
	assert.True(t, earned.IsZero())
}

func TestCalculateUnknownCommissionType(t *testing.T) {
	enrollment := &program.Enrollment{
		ID:               "pge_1",
		CommissionType:   types.CommissionType("tiered"),
		CommissionAmount: decimal.NewFromInt(10),
	}

	earned, err := Calculate(enrollment, Sale{Amount: 500, Currency: "usd", InvoiceID: "in_1"})
	assert.Error(t, err)
	assert.True(t, earned.IsZero())
}
