package models

import "time"

// AcademySetting is a key/value row backing the pricing snapshot
// (modality base fees, multi-student discount percent).
type AcademySetting struct {
	Key   string `gorm:"size:100;primary_key" json:"key"`
	Value string `gorm:"size:255;not null" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}
