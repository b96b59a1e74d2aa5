package ledger

import (
	"time"

	"github.com/dcabrera/music_academy/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatePaymentInput struct {
	StudentID      uuid.UUID
	ProgramID      *uuid.UUID
	EnrollmentID   *uuid.UUID
	Concept        string
	PaymentType    string
	OriginalAmount decimal.Decimal
	Currency       string
	DueDate        time.Time
	RecordedBy     uuid.UUID
}

func CreatePayment(db *gorm.DB, in CreatePaymentInput) (*models.Payment, error) {
	if !isPositive(in.OriginalAmount) {
		return nil, &ValidationError{Msg: "original amount must be greater than zero"}
	}
	if subCent(in.OriginalAmount) {
		return nil, &ValidationError{Msg: "original amount cannot be more precise than cents"}
	}
	if in.Concept == "" {
		return nil, &ValidationError{Msg: "concept is required"}
	}
	switch in.PaymentType {
	case models.PaymentTypeSingle, models.PaymentTypePartial, models.PaymentTypeInstallment:
	default:
		return nil, &ValidationError{Msg: "invalid payment type: " + in.PaymentType}
	}

	payment := models.Payment{
		StudentID:       in.StudentID,
		ProgramID:       in.ProgramID,
		EnrollmentID:    in.EnrollmentID,
		Concept:         in.Concept,
		PaymentType:     in.PaymentType,
		OriginalAmount:  in.OriginalAmount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: in.OriginalAmount,
		Currency:        in.Currency,
		DueDate:         in.DueDate,
		Status:          models.PaymentPending,
		RecordedBy:      in.RecordedBy,
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// PendingBalance is always recomputed from the two stored amounts,
// never read from a cached field.
func PendingBalance(p *models.Payment) decimal.Decimal {
	remaining := p.OriginalAmount.Sub(p.PaidAmount)
	if remaining.Sign() < 0 {
		return decimal.Zero
	}
	return remaining
}

func IsOverdue(p *models.Payment, today time.Time) bool {
	if p.Status != models.PaymentPending {
		return false
	}
	due := dateOnly(p.DueDate)
	return due.Before(dateOnly(today))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isTerminal(status string) bool {
	return status == models.PaymentCompleted || status == models.PaymentCancelled
}

// applyTransaction mutates the in-memory payment for a received
// amount: paid and remaining move together, and reaching zero flips
// the status to completed. Callers persist the result inside the same
// database transaction that appended the PaymentTransaction row.
func applyTransaction(p *models.Payment, amount decimal.Decimal, now time.Time) error {
	if isTerminal(p.Status) {
		return &InvalidStateError{Op: "add transaction", Status: p.Status}
	}
	if !isPositive(amount) {
		return &ValidationError{Msg: "transaction amount must be greater than zero"}
	}
	if subCent(amount) {
		return &ValidationError{Msg: "transaction amount cannot be more precise than cents"}
	}
	balance := PendingBalance(p)
	if amount.GreaterThan(balance) {
		return &OverpaymentError{MaxAllowed: balance, Currency: p.Currency}
	}

	p.PaidAmount = p.PaidAmount.Add(amount)
	p.RemainingAmount = p.OriginalAmount.Sub(p.PaidAmount)
	if p.RemainingAmount.IsZero() {
		p.Status = models.PaymentCompleted
		if p.PaymentDate == nil {
			p.PaymentDate = &now
		}
	}
	return nil
}

type AddTransactionInput struct {
	Amount          decimal.Decimal
	PaymentMethod   string
	ReferenceNumber *string
	Notes           *string
	RecordedBy      uuid.UUID
}

// AddTransaction appends a partial-payment event and updates the
// parent payment under a row lock, so two concurrent abonos cannot
// both pass the balance check.
func AddTransaction(db *gorm.DB, paymentID uuid.UUID, in AddTransactionInput) (*models.PaymentTransaction, *models.Payment, error) {
	if in.PaymentMethod == "" {
		return nil, nil, &ValidationError{Msg: "payment method is required"}
	}

	var payment models.Payment
	var txn models.PaymentTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, "id = ?", paymentID).Error; err != nil {
			return err
		}
		if err := applyTransaction(&payment, in.Amount, time.Now()); err != nil {
			return err
		}

		txn = models.PaymentTransaction{
			PaymentID:       payment.ID,
			Amount:          in.Amount,
			PaymentMethod:   in.PaymentMethod,
			ReferenceNumber: in.ReferenceNumber,
			Notes:           in.Notes,
			RecordedBy:      in.RecordedBy,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, nil, txError("add transaction", err)
	}
	return &txn, &payment, nil
}

// MarkCompleted is the direct-completion path for single payments: the
// full amount is settled in one action, with no transaction history.
func MarkCompleted(db *gorm.DB, paymentID uuid.UUID, method string, reference *string) (*models.Payment, error) {
	if method == "" {
		return nil, &ValidationError{Msg: "payment method is required"}
	}

	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, "id = ?", paymentID).Error; err != nil {
			return err
		}
		if isTerminal(payment.Status) {
			return &InvalidStateError{Op: "mark as completed", Status: payment.Status}
		}

		now := time.Now()
		payment.PaidAmount = payment.OriginalAmount
		payment.RemainingAmount = decimal.Zero
		payment.Status = models.PaymentCompleted
		payment.PaymentDate = &now
		payment.PaymentMethod = &method
		payment.ReferenceNumber = reference
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, txError("mark as completed", err)
	}
	return &payment, nil
}

// Cancel moves a non-completed payment to cancelled. Existing
// transactions are kept; a reimbursement is a new record, never a
// mutation of the history.
func Cancel(db *gorm.DB, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, "id = ?", paymentID).Error; err != nil {
			return err
		}
		if isTerminal(payment.Status) {
			return &InvalidStateError{Op: "cancel", Status: payment.Status}
		}
		payment.Status = models.PaymentCancelled
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, txError("cancel", err)
	}
	return &payment, nil
}

// DeletePayment refuses to remove a payment that already carries
// transaction history; the ledger is a durable record.
func DeletePayment(db *gorm.DB, paymentID uuid.UUID) error {
	return txError("delete payment", db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, "id = ?", paymentID).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.PaymentTransaction{}).Where("payment_id = ?", paymentID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &InvalidStateError{Op: "delete payment", Status: "backed by transactions"}
		}
		return tx.Delete(&payment).Error
	}))
}

// MarkOverdue flips every pending payment whose due date has passed.
// Run daily by the cron sweep.
func MarkOverdue(db *gorm.DB, today time.Time) (int64, error) {
	res := db.Model(&models.Payment{}).
		Where("status = ? AND due_date < ?", models.PaymentPending, dateOnly(today)).
		Update("status", models.PaymentOverdue)
	return res.RowsAffected, res.Error
}
