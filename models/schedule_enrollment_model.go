package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEnrollment statuses. Dropped rows are kept for history and
// free the seat; they are never hard-deleted.
const (
	ScheduleEnrolled = "enrolled"
	ScheduleDropped  = "dropped"
)

type ScheduleEnrollment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ScheduleID uuid.UUID  `gorm:"not null;index" json:"schedule_id"`
	StudentID  uuid.UUID  `gorm:"not null;index" json:"student_id"`
	Status     string     `gorm:"size:20;not null;default:'enrolled'" json:"status"`
	DroppedAt  *time.Time `json:"dropped_at"`

	Schedule Schedule `gorm:"foreignkey:ScheduleID" json:"schedule,omitempty"`
	Student  Student  `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
