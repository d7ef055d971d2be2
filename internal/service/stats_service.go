package service

import (
	"github.com/dom/rx-portal/internal/config"
	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/store"
)

// StatsService aggregates dashboard counters. Patient and prescription
// counts come from the store; appointment counters are configuration
// placeholders since there is no appointment subsystem.
type StatsService struct {
	store *store.Store
	cfg   *config.Config
}

func NewStatsService(st *store.Store, cfg *config.Config) *StatsService {
	return &StatsService{store: st, cfg: cfg}
}

type DoctorStats struct {
	TotalPatients         int `json:"totalPatients"`
	TodayAppointments     int `json:"todayAppointments"`
	PendingPrescriptions  int `json:"pendingPrescriptions"`
	CompletedAppointments int `json:"completedAppointments"`
}

type PharmacyStats struct {
	PendingPrescriptions   int `json:"pendingPrescriptions"`
	CompletedPrescriptions int `json:"completedPrescriptions"`
	LowStockItems          int `json:"lowStockItems"`
	TotalInventoryItems    int `json:"totalInventoryItems"`
}

func (s *StatsService) DoctorStats(identity domain.Identity) (DoctorStats, error) {
	if identity.Role != domain.RoleDoctor {
		return DoctorStats{}, domain.ErrNotAuthorized
	}

	profile, err := s.store.DoctorProfileByEmail(identity.Email)
	if err != nil {
		return DoctorStats{}, err
	}

	return DoctorStats{
		TotalPatients:         len(profile.Patients),
		TodayAppointments:     s.cfg.StatsTodayAppointments,
		PendingPrescriptions:  s.store.CountPrescriptionsByStatus(domain.PrescriptionPending),
		CompletedAppointments: s.cfg.StatsCompletedAppointments,
	}, nil
}

func (s *StatsService) PharmacyStats(identity domain.Identity) (PharmacyStats, error) {
	if identity.Role != domain.RolePharmacist {
		return PharmacyStats{}, domain.ErrNotAuthorized
	}

	return PharmacyStats{
		PendingPrescriptions:   s.store.CountPrescriptionsByStatus(domain.PrescriptionPending),
		CompletedPrescriptions: s.store.CountPrescriptionsByStatus(domain.PrescriptionCompleted),
		LowStockItems:          s.store.LowStockCount(),
		TotalInventoryItems:    s.store.MedicationCount(),
	}, nil
}

// Patients lists the seeded patient records for the doctor dashboard
func (s *StatsService) Patients(identity domain.Identity) ([]domain.Patient, error) {
	if identity.Role != domain.RoleDoctor {
		return nil, domain.ErrNotAuthorized
	}
	return s.store.Patients(), nil
}
