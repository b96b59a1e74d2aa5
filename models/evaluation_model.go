package models

import (
	"time"

	"github.com/google/uuid"
)

type Evaluation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID   uuid.UUID `gorm:"not null;index" json:"student_id"`
	ProgramID   uuid.UUID `gorm:"not null" json:"program_id"`
	ProfessorID uuid.UUID `gorm:"not null" json:"professor_id"`
	Period      string    `gorm:"size:50;not null" json:"period"`
	Score       int       `gorm:"not null" json:"score"`
	Remarks     *string   `gorm:"type:text" json:"remarks"`

	Student   Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Program   Program `gorm:"foreignkey:ProgramID" json:"program,omitempty"`
	Professor User    `gorm:"foreignkey:ProfessorID" json:"professor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
