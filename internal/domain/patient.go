package domain

// Patient is a seeded clinical record backing the doctor dashboard
type Patient struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Conditions    []string `json:"conditions"`
	Prescriptions []string `json:"prescriptions"`
}

// DoctorProfile is the clinical profile looked up for doctor stats.
// It is keyed separately from the credential record; the Email field
// links it to a registered user.
type DoctorProfile struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Patients       []string `json:"patients"`
	LicenseNumber  string   `json:"licenseNumber"`
}
