package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentTransaction is one partial-payment event against a Payment.
// Rows are append-only: no handler or service updates or deletes them.
type PaymentTransaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PaymentID uuid.UUID `gorm:"not null;index" json:"payment_id"`

	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod   string          `gorm:"size:50;not null" json:"payment_method"`
	ReferenceNumber *string         `gorm:"size:255" json:"reference_number"`
	Notes           *string         `gorm:"type:text" json:"notes"`

	Payment Payment `gorm:"foreignkey:PaymentID" json:"-"`

	RecordedBy uuid.UUID `gorm:"not null" json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
