package store

import "github.com/dom/rx-portal/internal/domain"

// Seed loads the default dataset used by the development server
func (s *Store) Seed() {
	for _, p := range []domain.Patient{
		{
			ID:            "P1",
			Name:          "John Doe",
			Age:           45,
			Conditions:    []string{"Hypertension", "Diabetes"},
			Prescriptions: []string{"PRE001", "PRE002"},
		},
		{
			ID:            "P2",
			Name:          "Jane Smith",
			Age:           32,
			Conditions:    []string{"Asthma"},
			Prescriptions: []string{"PRE003"},
		},
	} {
		s.AddPatient(p)
	}

	s.AddDoctorProfile(domain.DoctorProfile{
		ID:             "D1",
		Email:          "sarah.johnson@rx-portal.dev",
		Name:           "Dr. Sarah Johnson",
		Specialization: "Cardiologist",
		Patients:       []string{"P1", "P2"},
		LicenseNumber:  "MED123456",
	})

	s.AddMedication(domain.Medication{
		ID:           "M1",
		Name:         "Lisinopril",
		Stock:        100,
		MinThreshold: 20,
		Type:         "Prescription",
	})
}
