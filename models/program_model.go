package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Program struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Instrument string          `gorm:"size:100;not null" json:"instrument"`
	Modality   string          `gorm:"size:20;not null;default:'group'" json:"modality"`
	MonthlyFee decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"monthly_fee"`
	Currency   string          `gorm:"size:3;not null;default:'MXN'" json:"currency"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
