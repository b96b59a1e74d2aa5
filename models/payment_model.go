package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses. Completed and cancelled are terminal: no further
// transactions, no further status changes.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"
)

// Payment types.
const (
	PaymentTypeSingle      = "single"
	PaymentTypePartial     = "partial"
	PaymentTypeInstallment = "installment"
)

type Payment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID  `gorm:"not null;index" json:"student_id"`
	ProgramID    *uuid.UUID `json:"program_id"`
	EnrollmentID *uuid.UUID `json:"enrollment_id"`

	Concept     string `gorm:"size:255;not null" json:"concept"`
	PaymentType string `gorm:"size:20;not null" json:"payment_type"`

	OriginalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"original_amount"`
	PaidAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"remaining_amount"`
	Currency        string          `gorm:"size:3;not null;default:'MXN'" json:"currency"`

	DueDate     time.Time  `gorm:"not null;index" json:"due_date"`
	PaymentDate *time.Time `json:"payment_date"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`

	PaymentMethod   *string `gorm:"size:50" json:"payment_method"`
	ReferenceNumber *string `gorm:"size:255" json:"reference_number"`

	PlanID        *uuid.UUID `gorm:"index" json:"plan_id"`
	InstallmentNo *int       `json:"installment_no"`

	RecordedBy uuid.UUID `gorm:"not null" json:"recorded_by"`
	ReceiptURL *string   `gorm:"size:255" json:"receipt_url"`

	Student      Student              `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Program      *Program             `gorm:"foreignkey:ProgramID" json:"program,omitempty"`
	Transactions []PaymentTransaction `gorm:"foreignkey:PaymentID" json:"transactions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
