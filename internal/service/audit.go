package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// recordAudit persists an audit entry for a mutating operation.
// Best-effort: a failed audit write is logged and never fails the caller.
func recordAudit(ctx context.Context, repo repository.AuditRepository, actor domain.Identity, action, entity, entityID string, details map[string]any) {
	if repo == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		log.Printf("ERROR [service.recordAudit] failed to marshal details for %s: %v", action, err)
		payload = []byte("{}")
	}

	entry := &domain.AuditEntry{
		ID:        uuid.New(),
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   datatypes.JSON(payload),
		CreatedAt: time.Now(),
	}

	if err := repo.Create(ctx, entry); err != nil {
		log.Printf("ERROR [service.recordAudit] failed to record %s: %v", action, err)
	}
}
