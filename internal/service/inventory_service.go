package service

import (
	"context"

	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/repository"
	"github.com/dom/rx-portal/internal/store"
)

type InventoryService struct {
	store     *store.Store
	auditRepo repository.AuditRepository
}

func NewInventoryService(st *store.Store, auditRepo repository.AuditRepository) *InventoryService {
	return &InventoryService{
		store:     st,
		auditRepo: auditRepo,
	}
}

func (s *InventoryService) Medications() []domain.Medication {
	return s.store.Medications()
}

func (s *InventoryService) Medication(id string) (domain.Medication, error) {
	return s.store.MedicationByID(id)
}

// UpdateStock sets the medication's stock level to quantity. Only
// pharmacists may adjust inventory.
func (s *InventoryService) UpdateStock(ctx context.Context, identity domain.Identity, id string, quantity int) (domain.Medication, error) {
	if identity.Role != domain.RolePharmacist {
		return domain.Medication{}, domain.ErrNotAuthorized
	}

	med, err := s.store.SetStock(id, quantity)
	if err != nil {
		return domain.Medication{}, err
	}

	recordAudit(ctx, s.auditRepo, identity, "inventory.update", "medication", id,
		map[string]any{"stock": quantity})

	return med, nil
}
