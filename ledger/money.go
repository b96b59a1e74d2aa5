package ledger

import "github.com/shopspring/decimal"

// Amounts are decimal end to end; cents only appear inside the
// installment split, where integer arithmetic makes the remainder
// distribution exact.

func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func FromCents(c int64) decimal.Decimal {
	return decimal.NewFromInt(c).Shift(-2)
}

// FormatAmount renders an amount the way it appears in API responses
// and error messages, e.g. "1500.00 MXN".
func FormatAmount(d decimal.Decimal, currency string) string {
	return d.StringFixed(2) + " " + currency
}

func isPositive(d decimal.Decimal) bool {
	return d.Sign() > 0
}

// subCent reports whether d carries precision beyond two decimal
// places. Such amounts cannot round-trip through the cents math or the
// numeric(12,2) columns, so the ledger rejects them up front instead
// of silently rounding.
func subCent(d decimal.Decimal) bool {
	return !FromCents(Cents(d)).Equal(d)
}
