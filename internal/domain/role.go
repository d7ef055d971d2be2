package domain

// Role gates which API operations a caller may invoke
type Role string

const (
	RoleDoctor     Role = "DOCTOR"
	RolePharmacist Role = "PHARMACIST"
	RolePatient    Role = "PATIENT"
)

// AllRoles contains all valid roles
var AllRoles = []Role{RoleDoctor, RolePharmacist, RolePatient}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RolePharmacist, RolePatient:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a user-friendly display name for the role
func (r Role) DisplayName() string {
	switch r {
	case RoleDoctor:
		return "Doctor"
	case RolePharmacist:
		return "Pharmacist"
	case RolePatient:
		return "Patient"
	default:
		return string(r)
	}
}
