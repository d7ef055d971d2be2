package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/rx-portal/internal/api/middleware"
	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/events"
	"github.com/dom/rx-portal/internal/service"
	"github.com/go-chi/chi/v5"
)

type PrescriptionHandler struct {
	prescriptionService *service.PrescriptionService
	hub                 *events.Hub
}

func NewPrescriptionHandler(prescriptionService *service.PrescriptionService, hub *events.Hub) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionService: prescriptionService,
		hub:                 hub,
	}
}

type PrescriptionItemRequest struct {
	MedicationID string `json:"medicationId"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
}

type CreatePrescriptionRequest struct {
	PatientName string                    `json:"patientName"`
	Medications []PrescriptionItemRequest `json:"medications"`
}

func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.PatientName == "" || len(req.Medications) == 0 {
		http.Error(w, "Patient name and medications are required", http.StatusBadRequest)
		return
	}

	input := service.CreatePrescriptionInput{PatientName: req.PatientName}
	for _, m := range req.Medications {
		input.Medications = append(input.Medications, service.PrescriptionItemInput{
			MedicationID: m.MedicationID,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
		})
	}

	prescription, err := h.prescriptionService.Create(r.Context(), identity, input)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationNotFound) {
			http.Error(w, "Medication not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [prescription.Create] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(events.EventPrescriptionCreated, prescription)
	writeJSON(w, prescription)
}

func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.prescriptionService.List())
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid prescription id", http.StatusBadRequest)
		return
	}

	prescription, err := h.prescriptionService.Get(id)
	if err != nil {
		http.Error(w, "Prescription not found", http.StatusNotFound)
		return
	}

	writeJSON(w, prescription)
}

func (h *PrescriptionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid prescription id", http.StatusBadRequest)
		return
	}

	prescription, err := h.prescriptionService.Complete(r.Context(), identity, id)
	if err != nil {
		if errors.Is(err, domain.ErrPrescriptionNotFound) {
			http.Error(w, "Prescription not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [prescription.Complete] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(events.EventPrescriptionCompleted, prescription)
	writeJSON(w, prescription)
}
