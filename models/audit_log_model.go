package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ActorID  uuid.UUID `gorm:"not null;index" json:"actor_id"`
	Action   string    `gorm:"size:100;not null" json:"action"`
	Entity   string    `gorm:"size:50;not null" json:"entity"`
	EntityID uuid.UUID `gorm:"not null" json:"entity_id"`
	Detail   *string   `gorm:"type:text" json:"detail"`

	CreatedAt time.Time `json:"created_at"`
}
