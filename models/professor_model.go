package models

import (
	"time"

	"github.com/google/uuid"
)

type Professor struct {
	UserID      uuid.UUID `gorm:"primary_key" json:"user_id"`
	Specialties *string   `gorm:"size:255" json:"specialties"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
