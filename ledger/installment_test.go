package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitInstallmentsDistributesRemainderFirst(t *testing.T) {
	shares := SplitInstallments(100000, 3)
	require.Equal(t, []int64{33334, 33333, 33333}, shares)
}

func TestSplitInstallmentsSumLaw(t *testing.T) {
	totals := []int64{100000, 99999, 101, 12, 7777777, 1234567}
	for _, total := range totals {
		for n := MinInstallments; n <= MaxInstallments; n++ {
			if total < int64(n) {
				continue
			}
			shares := SplitInstallments(total, n)
			require.Len(t, shares, n)

			var sum int64
			for i, share := range shares {
				sum += share
				if i > 0 {
					assert.LessOrEqual(t, share, shares[i-1], "earlier installments carry the remainder")
				}
			}
			assert.Equal(t, total, sum, "total=%d n=%d", total, n)
		}
	}
}

func TestAddMonthsClampsToLastDay(t *testing.T) {
	jan31 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 2))
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 3))

	leapJan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), AddMonths(leapJan31, 1))
}

func TestAddMonthsPlainDates(t *testing.T) {
	start := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	for k := 0; k < 12; k++ {
		due := AddMonths(start, k)
		assert.Equal(t, 15, due.Day())
	}
}

func TestCreateInstallmentPlanValidation(t *testing.T) {
	base := InstallmentPlanInput{
		StudentID:   uuid.New(),
		Concept:     "Colegiatura piano",
		TotalAmount: decimal.NewFromInt(1000),
		Currency:    "MXN",
		StartDate:   time.Now(),
		RecordedBy:  uuid.New(),
	}

	for _, n := range []int{0, 1, 13} {
		in := base
		in.Installments = n
		_, err := CreateInstallmentPlan(nil, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "n=%d", n)
	}

	in := base
	in.Installments = 3
	in.TotalAmount = decimal.Zero
	_, err := CreateInstallmentPlan(nil, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	in = base
	in.Installments = 3
	in.TotalAmount = decimal.RequireFromString("0.02")
	_, err = CreateInstallmentPlan(nil, in)
	require.ErrorAs(t, err, &verr, "two cents cannot split three ways")
}

func TestCreateInstallmentPlanRejectsSubCentTotal(t *testing.T) {
	// 100.005 would round to 100.01 in the cents math, so the plan
	// would sum to a different total than requested.
	in := InstallmentPlanInput{
		StudentID:    uuid.New(),
		Concept:      "Colegiatura violín",
		TotalAmount:  decimal.RequireFromString("100.005"),
		Currency:     "MXN",
		Installments: 3,
		StartDate:    time.Now(),
		RecordedBy:   uuid.New(),
	}

	_, err := CreateInstallmentPlan(nil, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
