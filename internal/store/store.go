package store

import (
	"sort"
	"sync"
	"time"

	"github.com/dom/rx-portal/internal/domain"
)

// Store holds the in-memory clinical dataset: medications, prescriptions,
// patients and doctor profiles. It is the process's only datastore for
// these records; construct one per server (or per test) and pass it by
// reference, never hold it as a package global.
//
// All mutations take the write lock so concurrent requests stay atomic.
type Store struct {
	mu sync.RWMutex

	medications   map[string]*domain.Medication
	prescriptions map[int64]*domain.Prescription
	patients      map[string]*domain.Patient
	doctors       map[string]*domain.DoctorProfile

	nextPrescriptionID int64
}

// New creates an empty store. Use Seed to load the default dataset.
func New() *Store {
	return &Store{
		medications:        make(map[string]*domain.Medication),
		prescriptions:      make(map[int64]*domain.Prescription),
		patients:           make(map[string]*domain.Patient),
		doctors:            make(map[string]*domain.DoctorProfile),
		nextPrescriptionID: 1,
	}
}

// AddMedication inserts or replaces a medication record
func (s *Store) AddMedication(med domain.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := med
	s.medications[m.ID] = &m
}

// MedicationByID returns a copy of the medication with the given id
func (s *Store) MedicationByID(id string) (domain.Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	med, ok := s.medications[id]
	if !ok {
		return domain.Medication{}, domain.ErrMedicationNotFound
	}
	return *med, nil
}

// Medications returns all medications ordered by id
func (s *Store) Medications() []domain.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meds := make([]domain.Medication, 0, len(s.medications))
	for _, m := range s.medications {
		meds = append(meds, *m)
	}
	sort.Slice(meds, func(i, j int) bool { return meds[i].ID < meds[j].ID })
	return meds
}

// SetStock sets the medication's stock to quantity. This is a direct set,
// not an increment; negative quantities are rejected.
func (s *Store) SetStock(id string, quantity int) (domain.Medication, error) {
	if quantity < 0 {
		return domain.Medication{}, domain.ErrNegativeStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	med, ok := s.medications[id]
	if !ok {
		return domain.Medication{}, domain.ErrMedicationNotFound
	}
	med.Stock = quantity
	return *med, nil
}

// LowStockCount returns the number of medications below their threshold
func (s *Store) LowStockCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, m := range s.medications {
		if m.LowStock() {
			count++
		}
	}
	return count
}

// MedicationCount returns the number of inventory items
func (s *Store) MedicationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.medications)
}

// CreatePrescription resolves every item's medication id, assigns the next
// prescription id and persists the record with status PENDING. If any
// medication id is unknown the whole operation fails and nothing is stored.
func (s *Store) CreatePrescription(doctor domain.Prescriber, patientName string, items []PrescriptionItemInput) (domain.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := make([]domain.PrescriptionItem, 0, len(items))
	for _, item := range items {
		med, ok := s.medications[item.MedicationID]
		if !ok {
			return domain.Prescription{}, domain.ErrMedicationNotFound
		}
		resolved = append(resolved, domain.PrescriptionItem{
			Medication: *med,
			Dosage:     item.Dosage,
			Frequency:  item.Frequency,
			Duration:   item.Duration,
		})
	}

	p := &domain.Prescription{
		ID:          s.nextPrescriptionID,
		PatientName: patientName,
		Doctor:      doctor,
		Medications: resolved,
		Status:      domain.PrescriptionPending,
		CreatedAt:   time.Now(),
	}
	s.nextPrescriptionID++
	s.prescriptions[p.ID] = p

	return *p, nil
}

// PrescriptionItemInput references a medication by id before resolution
type PrescriptionItemInput struct {
	MedicationID string
	Dosage       string
	Frequency    string
	Duration     string
}

// PrescriptionByID returns a copy of the prescription with the given id
func (s *Store) PrescriptionByID(id int64) (domain.Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prescriptions[id]
	if !ok {
		return domain.Prescription{}, domain.ErrPrescriptionNotFound
	}
	return *p, nil
}

// Prescriptions returns all prescriptions ordered by id
func (s *Store) Prescriptions() []domain.Prescription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]domain.Prescription, 0, len(s.prescriptions))
	for _, p := range s.prescriptions {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// CompletePrescription marks the prescription COMPLETED. Completing an
// already-completed prescription is a no-op that still succeeds; there is
// no transition out of COMPLETED.
func (s *Store) CompletePrescription(id int64) (domain.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prescriptions[id]
	if !ok {
		return domain.Prescription{}, domain.ErrPrescriptionNotFound
	}
	p.Status = domain.PrescriptionCompleted
	return *p, nil
}

// CountPrescriptionsByStatus returns how many prescriptions are in the given state
func (s *Store) CountPrescriptionsByStatus(status domain.PrescriptionStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.prescriptions {
		if p.Status == status {
			count++
		}
	}
	return count
}

// AddPatient inserts or replaces a patient record
func (s *Store) AddPatient(patient domain.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := patient
	s.patients[p.ID] = &p
}

// Patients returns all patients ordered by id
func (s *Store) Patients() []domain.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]domain.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// AddDoctorProfile inserts or replaces a doctor profile
func (s *Store) AddDoctorProfile(profile domain.DoctorProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := profile
	s.doctors[d.ID] = &d
}

// DoctorProfileByID returns the doctor profile with the given id
func (s *Store) DoctorProfileByID(id string) (domain.DoctorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[id]
	if !ok {
		return domain.DoctorProfile{}, domain.ErrDoctorNotFound
	}
	return *d, nil
}

// DoctorProfileByEmail returns the doctor profile registered under the
// given credential email. Callers without a clinical profile get
// ErrDoctorNotFound.
func (s *Store) DoctorProfileByEmail(email string) (domain.DoctorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.doctors {
		if d.Email == email {
			return *d, nil
		}
	}
	return domain.DoctorProfile{}, domain.ErrDoctorNotFound
}
