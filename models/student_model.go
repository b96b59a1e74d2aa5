package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName  string     `gorm:"size:255;not null" json:"full_name"`
	Email     *string    `gorm:"size:255;unique" json:"email"`
	Phone     *string    `gorm:"size:30" json:"phone"`
	BirthDate *time.Time `json:"birth_date"`

	GuardianName  *string `gorm:"size:255" json:"guardian_name"`
	GuardianPhone *string `gorm:"size:30" json:"guardian_phone"`
	GuardianEmail *string `gorm:"size:255" json:"guardian_email"`

	Status            string  `gorm:"size:20;not null;default:'active'" json:"status"`
	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	Notes             *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
