package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"not null"`
	Role           Role      `json:"role" gorm:"type:varchar(16);not null"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization,omitempty"`
	LicenseNumber  string    `json:"licenseNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Identity is the per-request caller identity derived from a bearer token.
// It carries only what authorization checks need.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  Role
}
