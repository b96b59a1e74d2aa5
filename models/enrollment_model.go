package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgramEnrollment lifecycle statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentWithdrawn = "withdrawn"
)

type ProgramEnrollment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID  `gorm:"not null" json:"student_id"`
	ProgramID uuid.UUID  `gorm:"not null" json:"program_id"`
	Status    string     `gorm:"size:20;not null;default:'active'" json:"status"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Program Program `gorm:"foreignkey:ProgramID" json:"program,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
