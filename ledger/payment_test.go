package ledger

import (
	"testing"
	"time"

	"github.com/dcabrera/music_academy/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingPayment(original string) *models.Payment {
	amount := decimal.RequireFromString(original)
	return &models.Payment{
		ID:              uuid.New(),
		StudentID:       uuid.New(),
		Concept:         "Colegiatura guitarra",
		PaymentType:     models.PaymentTypePartial,
		OriginalAmount:  amount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: amount,
		Currency:        "MXN",
		DueDate:         time.Now().AddDate(0, 1, 0),
		Status:          models.PaymentPending,
	}
}

func assertLedgerInvariant(t *testing.T, p *models.Payment) {
	t.Helper()
	assert.True(t, p.PaidAmount.Add(p.RemainingAmount).Equal(p.OriginalAmount),
		"paid + remaining must equal original")
	assert.True(t, p.PaidAmount.Sign() >= 0)
	assert.True(t, p.PaidAmount.LessThanOrEqual(p.OriginalAmount))
	if p.Status == models.PaymentCompleted {
		assert.True(t, p.RemainingAmount.IsZero())
		assert.NotNil(t, p.PaymentDate)
	}
}

func TestApplyTransactionPartialThenComplete(t *testing.T) {
	p := pendingPayment("500.00")
	now := time.Now()

	require.NoError(t, applyTransaction(p, decimal.RequireFromString("200.00"), now))
	assert.True(t, p.PaidAmount.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, p.RemainingAmount.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Nil(t, p.PaymentDate)
	assertLedgerInvariant(t, p)

	require.NoError(t, applyTransaction(p, decimal.RequireFromString("300.00"), now))
	assert.Equal(t, models.PaymentCompleted, p.Status)
	assert.True(t, p.RemainingAmount.IsZero())
	require.NotNil(t, p.PaymentDate)
	assertLedgerInvariant(t, p)
}

func TestApplyTransactionRejectsOverpayment(t *testing.T) {
	p := pendingPayment("400.00")
	require.NoError(t, applyTransaction(p, decimal.RequireFromString("100.00"), time.Now()))

	err := applyTransaction(p, decimal.RequireFromString("300.01"), time.Now())
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.True(t, overErr.MaxAllowed.Equal(decimal.RequireFromString("300.00")))
	assert.Contains(t, overErr.Error(), "300.00 MXN")

	// The failed attempt must leave the ledger untouched.
	assert.True(t, p.PaidAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, p.RemainingAmount.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(t, models.PaymentPending, p.Status)
	assertLedgerInvariant(t, p)
}

func TestApplyTransactionRejectsNonPositiveAmounts(t *testing.T) {
	p := pendingPayment("100.00")
	var verr *ValidationError
	require.ErrorAs(t, applyTransaction(p, decimal.Zero, time.Now()), &verr)
	require.ErrorAs(t, applyTransaction(p, decimal.RequireFromString("-5.00"), time.Now()), &verr)
	assert.True(t, p.PaidAmount.IsZero())
}

func TestApplyTransactionRejectsSubCentPrecision(t *testing.T) {
	p := pendingPayment("100.00")

	err := applyTransaction(p, decimal.RequireFromString("10.005"), time.Now())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	assert.True(t, p.PaidAmount.IsZero())
	assert.Equal(t, models.PaymentPending, p.Status)
	assertLedgerInvariant(t, p)
}

func TestApplyTransactionRejectsTerminalStates(t *testing.T) {
	for _, status := range []string{models.PaymentCompleted, models.PaymentCancelled} {
		p := pendingPayment("100.00")
		p.Status = status
		err := applyTransaction(p, decimal.RequireFromString("50.00"), time.Now())
		var stateErr *InvalidStateError
		require.ErrorAs(t, err, &stateErr, "status=%s", status)
	}
}

func TestApplyTransactionExactBalanceSequence(t *testing.T) {
	// Concurrent 300 + 250 against remaining 400: whichever lands
	// second must fail, the winner's amount is the only one recorded.
	p := pendingPayment("400.00")
	require.NoError(t, applyTransaction(p, decimal.RequireFromString("300.00"), time.Now()))

	err := applyTransaction(p, decimal.RequireFromString("250.00"), time.Now())
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.True(t, p.PaidAmount.Equal(decimal.RequireFromString("300.00")))
	assertLedgerInvariant(t, p)
}

func TestPendingBalanceIsPureAndIdempotent(t *testing.T) {
	p := pendingPayment("750.50")
	require.NoError(t, applyTransaction(p, decimal.RequireFromString("250.50"), time.Now()))

	first := PendingBalance(p)
	second := PendingBalance(p)
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(decimal.RequireFromString("500.00")))
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

	p := pendingPayment("100.00")
	p.DueDate = time.Date(2025, time.June, 14, 23, 59, 0, 0, time.UTC)
	assert.True(t, IsOverdue(p, today))

	// Due today is not overdue yet.
	p.DueDate = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsOverdue(p, today))

	p.DueDate = time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsOverdue(p, today))

	p.DueDate = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	p.Status = models.PaymentCompleted
	assert.False(t, IsOverdue(p, today), "only pending payments go overdue")
}

func TestCreatePaymentValidation(t *testing.T) {
	base := CreatePaymentInput{
		StudentID:      uuid.New(),
		Concept:        "Inscripción",
		PaymentType:    models.PaymentTypeSingle,
		OriginalAmount: decimal.NewFromInt(800),
		Currency:       "MXN",
		DueDate:        time.Now(),
		RecordedBy:     uuid.New(),
	}

	var verr *ValidationError

	in := base
	in.OriginalAmount = decimal.Zero
	_, err := CreatePayment(nil, in)
	require.ErrorAs(t, err, &verr)

	in = base
	in.OriginalAmount = decimal.NewFromInt(-10)
	_, err = CreatePayment(nil, in)
	require.ErrorAs(t, err, &verr)

	in = base
	in.Concept = ""
	_, err = CreatePayment(nil, in)
	require.ErrorAs(t, err, &verr)

	in = base
	in.PaymentType = "biweekly"
	_, err = CreatePayment(nil, in)
	require.ErrorAs(t, err, &verr)

	// More precision than cents cannot survive the numeric(12,2)
	// columns, so it is rejected instead of silently rounded.
	in = base
	in.OriginalAmount = decimal.RequireFromString("100.005")
	_, err = CreatePayment(nil, in)
	require.ErrorAs(t, err, &verr)
}
