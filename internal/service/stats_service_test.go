package service_test

import (
	"testing"

	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/service"
	"github.com/dom/rx-portal/internal/store"
	"github.com/dom/rx-portal/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doctorIdentity(email string) domain.Identity {
	return domain.Identity{ID: uuid.New(), Email: email, Role: domain.RoleDoctor}
}

func TestStatsService_DoctorStats(t *testing.T) {
	st := store.New()
	st.Seed()
	cfg := testutil.TestConfig()
	statsService := service.NewStatsService(st, cfg)

	_, err := st.CreatePrescription(domain.Prescriber{ID: uuid.New(), Role: domain.RoleDoctor},
		"John Doe", []store.PrescriptionItemInput{
			{MedicationID: "M1", Dosage: "10mg", Frequency: "daily", Duration: "30 days"},
		})
	require.NoError(t, err)

	tests := []struct {
		name     string
		identity domain.Identity
		wantErr  error
		check    func(*testing.T, service.DoctorStats)
	}{
		{
			name:     "doctor with a seeded profile",
			identity: doctorIdentity("sarah.johnson@rx-portal.dev"),
			check: func(t *testing.T, stats service.DoctorStats) {
				assert.Equal(t, 2, stats.TotalPatients)
				assert.Equal(t, 1, stats.PendingPrescriptions)
				assert.Equal(t, cfg.StatsTodayAppointments, stats.TodayAppointments)
				assert.Equal(t, cfg.StatsCompletedAppointments, stats.CompletedAppointments)
			},
		},
		{
			name:     "doctor without a clinical profile",
			identity: doctorIdentity("unknown@example.com"),
			wantErr:  domain.ErrDoctorNotFound,
		},
		{
			name:     "wrong role",
			identity: domain.Identity{ID: uuid.New(), Email: "p@example.com", Role: domain.RolePharmacist},
			wantErr:  domain.ErrNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := statsService.DoctorStats(tt.identity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, stats)
		})
	}
}

func TestStatsService_PharmacyStats(t *testing.T) {
	st := store.New()
	st.Seed()
	st.AddMedication(domain.Medication{ID: "M2", Name: "Albuterol", Stock: 3, MinThreshold: 10})
	statsService := service.NewStatsService(st, testutil.TestConfig())

	first, err := st.CreatePrescription(domain.Prescriber{ID: uuid.New(), Role: domain.RoleDoctor},
		"John Doe", []store.PrescriptionItemInput{
			{MedicationID: "M1", Dosage: "10mg", Frequency: "daily", Duration: "30 days"},
		})
	require.NoError(t, err)
	_, err = st.CreatePrescription(domain.Prescriber{ID: uuid.New(), Role: domain.RoleDoctor},
		"Jane Smith", []store.PrescriptionItemInput{
			{MedicationID: "M2", Dosage: "2 puffs", Frequency: "as needed", Duration: "90 days"},
		})
	require.NoError(t, err)
	_, err = st.CompletePrescription(first.ID)
	require.NoError(t, err)

	pharmacist := domain.Identity{ID: uuid.New(), Email: "rx@example.com", Role: domain.RolePharmacist}

	stats, err := statsService.PharmacyStats(pharmacist)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingPrescriptions)
	assert.Equal(t, 1, stats.CompletedPrescriptions)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, 2, stats.TotalInventoryItems)

	_, err = statsService.PharmacyStats(doctorIdentity("sarah.johnson@rx-portal.dev"))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestStatsService_Patients(t *testing.T) {
	st := store.New()
	st.Seed()
	statsService := service.NewStatsService(st, testutil.TestConfig())

	patients, err := statsService.Patients(doctorIdentity("sarah.johnson@rx-portal.dev"))
	require.NoError(t, err)
	assert.Len(t, patients, 2)
	assert.Equal(t, "John Doe", patients[0].Name)

	_, err = statsService.Patients(domain.Identity{ID: uuid.New(), Role: domain.RolePatient})
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}
