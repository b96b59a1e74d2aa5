package models

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ScheduleID uuid.UUID `gorm:"not null;index" json:"schedule_id"`
	StudentID  uuid.UUID `gorm:"not null;index" json:"student_id"`
	Date       time.Time `gorm:"not null" json:"date"`
	Status     string    `gorm:"size:20;not null" json:"status"`
	Notes      *string   `gorm:"type:text" json:"notes"`
	RecordedBy uuid.UUID `gorm:"not null" json:"recorded_by"`

	Schedule Schedule `gorm:"foreignkey:ScheduleID" json:"schedule,omitempty"`
	Student  Student  `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
