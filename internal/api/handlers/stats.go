package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dom/rx-portal/internal/api/middleware"
	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	stats, err := h.statsService.DoctorStats(identity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotAuthorized):
			http.Error(w, "Not authorized", http.StatusForbidden)
		case errors.Is(err, domain.ErrDoctorNotFound):
			http.Error(w, "Doctor not found", http.StatusNotFound)
		default:
			log.Printf("ERROR [stats.Doctor] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, stats)
}

func (h *StatsHandler) Pharmacy(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	stats, err := h.statsService.PharmacyStats(identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			http.Error(w, "Not authorized", http.StatusForbidden)
			return
		}
		log.Printf("ERROR [stats.Pharmacy] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats)
}

func (h *StatsHandler) Patients(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	patients, err := h.statsService.Patients(identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			http.Error(w, "Not authorized", http.StatusForbidden)
			return
		}
		log.Printf("ERROR [stats.Patients] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, patients)
}
