package service

import (
	"context"
	"strconv"

	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/repository"
	"github.com/dom/rx-portal/internal/store"
)

type PrescriptionService struct {
	store     *store.Store
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
}

func NewPrescriptionService(st *store.Store, userRepo repository.UserRepository, auditRepo repository.AuditRepository) *PrescriptionService {
	return &PrescriptionService{
		store:     st,
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

type PrescriptionItemInput struct {
	MedicationID string
	Dosage       string
	Frequency    string
	Duration     string
}

type CreatePrescriptionInput struct {
	PatientName string
	Medications []PrescriptionItemInput
}

// Create issues a new prescription on behalf of the caller. Every
// medication id is resolved against the store before anything is written;
// an unknown id fails the whole operation.
func (s *PrescriptionService) Create(ctx context.Context, identity domain.Identity, input CreatePrescriptionInput) (domain.Prescription, error) {
	prescriber := domain.Prescriber{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  identity.Role,
	}

	// The token carries no display name; look it up when we can
	if user, err := s.userRepo.GetByID(ctx, identity.ID); err == nil {
		prescriber.Name = user.Name
	}

	items := make([]store.PrescriptionItemInput, 0, len(input.Medications))
	for _, m := range input.Medications {
		items = append(items, store.PrescriptionItemInput{
			MedicationID: m.MedicationID,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
		})
	}

	prescription, err := s.store.CreatePrescription(prescriber, input.PatientName, items)
	if err != nil {
		return domain.Prescription{}, err
	}

	recordAudit(ctx, s.auditRepo, identity, "prescription.create", "prescription",
		strconv.FormatInt(prescription.ID, 10), map[string]any{
			"patientName": prescription.PatientName,
			"medications": len(prescription.Medications),
		})

	return prescription, nil
}

// Complete marks the prescription COMPLETED. Re-completing an already
// completed prescription succeeds and leaves it COMPLETED.
func (s *PrescriptionService) Complete(ctx context.Context, identity domain.Identity, id int64) (domain.Prescription, error) {
	prescription, err := s.store.CompletePrescription(id)
	if err != nil {
		return domain.Prescription{}, err
	}

	recordAudit(ctx, s.auditRepo, identity, "prescription.complete", "prescription",
		strconv.FormatInt(id, 10), map[string]any{"status": prescription.Status})

	return prescription, nil
}

func (s *PrescriptionService) Get(id int64) (domain.Prescription, error) {
	return s.store.PrescriptionByID(id)
}

func (s *PrescriptionService) List() []domain.Prescription {
	return s.store.Prescriptions()
}
