package services

import (
	"log"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/models"
	"github.com/google/uuid"
)

// RecordAudit writes an audit trail row. Called in a goroutine after
// the main operation committed; a failed audit write is logged and
// never fails the operation it describes.
func RecordAudit(actorID uuid.UUID, action, entity string, entityID uuid.UUID, detail string) {
	entry := models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	if detail != "" {
		entry.Detail = &detail
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("🔥 Failed to write audit log (%s %s %s): %v", action, entity, entityID, err)
	}
}
