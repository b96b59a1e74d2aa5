package ledger

import (
	"fmt"
	"time"

	"github.com/dcabrera/music_academy/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MinInstallments = 2
	MaxInstallments = 12
)

// SplitInstallments divides totalCents into n shares: floor division
// plus one extra cent on the earliest installments, so the shares
// always sum back to the exact total.
func SplitInstallments(totalCents int64, n int) []int64 {
	base := totalCents / int64(n)
	remainder := totalCents - base*int64(n)

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}

// AddMonths advances a date by whole calendar months, clamping to the
// last valid day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

type InstallmentPlanInput struct {
	StudentID    uuid.UUID
	ProgramID    *uuid.UUID
	EnrollmentID *uuid.UUID
	Concept      string
	TotalAmount  decimal.Decimal
	Currency     string
	Installments int
	StartDate    time.Time
	RecordedBy   uuid.UUID
}

// CreateInstallmentPlan splits a total into n pending payments due one
// calendar month apart, linked by a shared plan id. The n inserts run
// in one transaction: either the whole plan exists or none of it does.
func CreateInstallmentPlan(db *gorm.DB, in InstallmentPlanInput) ([]models.Payment, error) {
	if in.Installments < MinInstallments || in.Installments > MaxInstallments {
		return nil, &ValidationError{Msg: fmt.Sprintf("number of installments must be between %d and %d", MinInstallments, MaxInstallments)}
	}
	if !isPositive(in.TotalAmount) {
		return nil, &ValidationError{Msg: "total amount must be greater than zero"}
	}
	if subCent(in.TotalAmount) {
		return nil, &ValidationError{Msg: "total amount cannot be more precise than cents"}
	}
	if in.Concept == "" {
		return nil, &ValidationError{Msg: "concept is required"}
	}

	totalCents := Cents(in.TotalAmount)
	if totalCents < int64(in.Installments) {
		return nil, &ValidationError{Msg: "total amount is too small to split into that many installments"}
	}
	shares := SplitInstallments(totalCents, in.Installments)

	planID := uuid.New()
	payments := make([]models.Payment, 0, in.Installments)
	for k, share := range shares {
		amount := FromCents(share)
		no := k + 1
		payments = append(payments, models.Payment{
			StudentID:       in.StudentID,
			ProgramID:       in.ProgramID,
			EnrollmentID:    in.EnrollmentID,
			Concept:         fmt.Sprintf("%s (%d/%d)", in.Concept, no, in.Installments),
			PaymentType:     models.PaymentTypeInstallment,
			OriginalAmount:  amount,
			PaidAmount:      decimal.Zero,
			RemainingAmount: amount,
			Currency:        in.Currency,
			DueDate:         AddMonths(in.StartDate, k),
			Status:          models.PaymentPending,
			PlanID:          &planID,
			InstallmentNo:   &no,
			RecordedBy:      in.RecordedBy,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range payments {
			if err := tx.Create(&payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, txError("create installment plan", err)
	}
	return payments, nil
}
