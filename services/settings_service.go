package services

import (
	"github.com/dcabrera/music_academy/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingSnapshot is an immutable view of the academy's pricing
// settings, loaded once per operation and passed into payment and
// installment creation. Handlers never read settings rows ad hoc.
type PricingSnapshot struct {
	IndividualMonthlyFee decimal.Decimal
	GroupMonthlyFee      decimal.Decimal
	SiblingDiscountPct   decimal.Decimal
	Currency             string
}

const (
	settingIndividualFee   = "pricing.individual_monthly_fee"
	settingGroupFee        = "pricing.group_monthly_fee"
	settingSiblingDiscount = "pricing.sibling_discount_pct"
	settingCurrency        = "pricing.currency"
)

var pricingDefaults = map[string]string{
	settingIndividualFee:   "1200.00",
	settingGroupFee:        "800.00",
	settingSiblingDiscount: "10",
	settingCurrency:        "MXN",
}

// LoadPricingSnapshot reads the settings rows and falls back to
// defaults for any missing key.
func LoadPricingSnapshot(db *gorm.DB) (*PricingSnapshot, error) {
	var rows []models.AcademySetting
	if err := db.Where("key LIKE ?", "pricing.%").Find(&rows).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(pricingDefaults))
	for key, def := range pricingDefaults {
		values[key] = def
	}
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	individual, err := decimal.NewFromString(values[settingIndividualFee])
	if err != nil {
		return nil, err
	}
	group, err := decimal.NewFromString(values[settingGroupFee])
	if err != nil {
		return nil, err
	}
	discount, err := decimal.NewFromString(values[settingSiblingDiscount])
	if err != nil {
		return nil, err
	}

	return &PricingSnapshot{
		IndividualMonthlyFee: individual,
		GroupMonthlyFee:      group,
		SiblingDiscountPct:   discount,
		Currency:             values[settingCurrency],
	}, nil
}

// MonthlyFeeFor picks the modality base fee and applies the sibling
// discount when the student has other active enrollees in the family.
func (s *PricingSnapshot) MonthlyFeeFor(modality string, siblingDiscount bool) decimal.Decimal {
	fee := s.GroupMonthlyFee
	if modality == "individual" {
		fee = s.IndividualMonthlyFee
	}
	if siblingDiscount {
		factor := decimal.NewFromInt(100).Sub(s.SiblingDiscountPct).Div(decimal.NewFromInt(100))
		fee = fee.Mul(factor).Round(2)
	}
	return fee
}
