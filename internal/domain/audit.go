package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEntry records a mutating API operation. Details holds the
// operation-specific payload as JSONB.
type AuditEntry struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ActorID   uuid.UUID      `json:"actorId" gorm:"type:uuid;not null"`
	ActorRole Role           `json:"actorRole" gorm:"type:varchar(16);not null"`
	Action    string         `json:"action" gorm:"not null"`
	Entity    string         `json:"entity" gorm:"not null"`
	EntityID  string         `json:"entityId"`
	Details   datatypes.JSON `json:"details" gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time      `json:"createdAt"`
}
