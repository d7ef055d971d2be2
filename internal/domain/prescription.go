package domain

import (
	"time"

	"github.com/google/uuid"
)

// PrescriptionStatus is the prescription lifecycle state.
// The only transition is PENDING -> COMPLETED.
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "PENDING"
	PrescriptionCompleted PrescriptionStatus = "COMPLETED"
)

// Prescriber is a snapshot of the issuing doctor taken at creation time,
// so a later role or profile change does not rewrite history.
type Prescriber struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

// PrescriptionItem ties one medication to its dosage instructions
type PrescriptionItem struct {
	Medication Medication `json:"medication"`
	Dosage     string     `json:"dosage"`
	Frequency  string     `json:"frequency"`
	Duration   string     `json:"duration"`
}

type Prescription struct {
	ID          int64              `json:"id"`
	PatientName string             `json:"patientName"`
	Doctor      Prescriber         `json:"doctor"`
	Medications []PrescriptionItem `json:"medications"`
	Status      PrescriptionStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
}
