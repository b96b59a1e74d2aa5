package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyFeeFor(t *testing.T) {
	snapshot := &PricingSnapshot{
		IndividualMonthlyFee: decimal.RequireFromString("1200.00"),
		GroupMonthlyFee:      decimal.RequireFromString("800.00"),
		SiblingDiscountPct:   decimal.RequireFromString("10"),
		Currency:             "MXN",
	}

	assert.True(t, snapshot.MonthlyFeeFor("individual", false).Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, snapshot.MonthlyFeeFor("group", false).Equal(decimal.RequireFromString("800.00")))

	assert.True(t, snapshot.MonthlyFeeFor("individual", true).Equal(decimal.RequireFromString("1080.00")))
	assert.True(t, snapshot.MonthlyFeeFor("group", true).Equal(decimal.RequireFromString("720.00")))
}

func TestMonthlyFeeForRoundsDiscountToCents(t *testing.T) {
	snapshot := &PricingSnapshot{
		IndividualMonthlyFee: decimal.RequireFromString("999.99"),
		GroupMonthlyFee:      decimal.RequireFromString("666.67"),
		SiblingDiscountPct:   decimal.RequireFromString("15"),
	}

	fee := snapshot.MonthlyFeeFor("group", true)
	assert.Equal(t, int32(-2), fee.Exponent(), "fee must carry at most two decimal places")
	assert.True(t, fee.Equal(decimal.RequireFromString("566.67")))
}
