package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Schedule statuses. Only completed schedules stop participating in
// professor overlap checks; inactive ones still block the time slot.
const (
	ScheduleActive    = "active"
	ScheduleInactive  = "inactive"
	ScheduleCompleted = "completed"
)

type Schedule struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProgramID   uuid.UUID  `gorm:"not null" json:"program_id"`
	ProfessorID *uuid.UUID `gorm:"index" json:"professor_id"`

	DaysOfWeek pq.StringArray `gorm:"type:text[];not null" json:"days_of_week"`
	StartTime  string         `gorm:"size:5;not null" json:"start_time"`
	EndTime    string         `gorm:"size:5;not null" json:"end_time"`
	Classroom  *string        `gorm:"size:100" json:"classroom"`

	MaxStudents int    `gorm:"not null;default:1" json:"max_students"`
	Status      string `gorm:"size:20;not null;default:'active'" json:"status"`

	Program   Program `gorm:"foreignkey:ProgramID" json:"program,omitempty"`
	Professor *User   `gorm:"foreignkey:ProfessorID" json:"professor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
