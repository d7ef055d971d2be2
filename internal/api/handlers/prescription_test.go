package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prescriptionResponse struct {
	ID          int64  `json:"id"`
	PatientName string `json:"patientName"`
	Status      string `json:"status"`
	Doctor      struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"doctor"`
	Medications []struct {
		Medication struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"medication"`
		Dosage string `json:"dosage"`
	} `json:"medications"`
}

func createPrescriptionRequest() map[string]interface{} {
	return map[string]interface{}{
		"patientName": "John Doe",
		"medications": []map[string]string{
			{"medicationId": "M1", "dosage": "10mg", "frequency": "daily", "duration": "30 days"},
		},
	}
}

func TestPrescriptionHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	doctor, token := testutil.NewUserBuilder().
		WithEmail("doc@x.com").
		WithRole(domain.RoleDoctor).
		BuildAndAuthenticate(t, ts)

	tests := []struct {
		name           string
		token          string
		request        map[string]interface{}
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name:           "successful create",
			token:          token,
			request:        createPrescriptionRequest(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result prescriptionResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "John Doe", result.PatientName)
				assert.Equal(t, "PENDING", result.Status)
				assert.Equal(t, doctor.ID.String(), result.Doctor.ID)
				require.Len(t, result.Medications, 1)
				assert.Equal(t, "Lisinopril", result.Medications[0].Medication.Name)
			},
		},
		{
			name:  "unknown medication fails whole request",
			token: token,
			request: map[string]interface{}{
				"patientName": "John Doe",
				"medications": []map[string]string{
					{"medicationId": "M1", "dosage": "10mg", "frequency": "daily", "duration": "30 days"},
					{"medicationId": "M404", "dosage": "5mg", "frequency": "daily", "duration": "7 days"},
				},
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:  "missing patient name",
			token: token,
			request: map[string]interface{}{
				"medications": []map[string]string{
					{"medicationId": "M1", "dosage": "10mg", "frequency": "daily", "duration": "30 days"},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "anonymous caller",
			token:          "",
			request:        createPrescriptionRequest(),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Request(t, http.MethodPost, "/prescriptions", tt.token, tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestPrescriptionHandler_Complete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithEmail("doc@x.com").
		WithRole(domain.RoleDoctor).
		BuildAndAuthenticate(t, ts)

	resp := ts.Request(t, http.MethodPost, "/prescriptions", token, createPrescriptionRequest())
	var created prescriptionResponse
	testutil.AssertJSONResponse(t, resp, &created)
	resp.Body.Close()

	completeURL := fmt.Sprintf("/prescriptions/%d/complete", created.ID)

	// First completion
	resp = ts.Request(t, http.MethodPost, completeURL, token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var completed prescriptionResponse
	testutil.AssertJSONResponse(t, resp, &completed)
	resp.Body.Close()
	assert.Equal(t, "COMPLETED", completed.Status)

	// Completing again is idempotent
	resp = ts.Request(t, http.MethodPost, completeURL, token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &completed)
	resp.Body.Close()
	assert.Equal(t, "COMPLETED", completed.Status)

	// Unknown prescription
	resp = ts.Request(t, http.MethodPost, "/prescriptions/999/complete", token, nil)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Prescription not found")
}

func TestPrescriptionHandler_ListAndGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithEmail("doc@x.com").
		WithRole(domain.RoleDoctor).
		BuildAndAuthenticate(t, ts)

	for i := 0; i < 2; i++ {
		resp := ts.Request(t, http.MethodPost, "/prescriptions", token, createPrescriptionRequest())
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		resp.Body.Close()
	}

	resp := ts.Request(t, http.MethodGet, "/prescriptions", token, nil)
	var list []prescriptionResponse
	testutil.AssertJSONResponse(t, resp, &list)
	resp.Body.Close()
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)

	resp = ts.Request(t, http.MethodGet, "/prescriptions/2", token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var got prescriptionResponse
	testutil.AssertJSONResponse(t, resp, &got)
	resp.Body.Close()
	assert.Equal(t, int64(2), got.ID)

	resp = ts.Request(t, http.MethodGet, "/prescriptions/99", token, nil)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}
