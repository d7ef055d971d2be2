package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/rx-portal/internal/api/middleware"
	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/events"
	"github.com/dom/rx-portal/internal/service"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
	hub              *events.Hub
}

func NewInventoryHandler(inventoryService *service.InventoryService, hub *events.Hub) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		hub:              hub,
	}
}

type UpdateStockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.inventoryService.Medications())
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	med, err := h.inventoryService.Medication(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Medication not found", http.StatusNotFound)
		return
	}
	writeJSON(w, med)
}

// UpdateStock sets the medication stock to the requested quantity.
// The quantity replaces the current stock, it is not added to it.
func (h *InventoryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	med, err := h.inventoryService.UpdateStock(r.Context(), identity, chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotAuthorized):
			http.Error(w, "Not authorized", http.StatusForbidden)
		case errors.Is(err, domain.ErrMedicationNotFound):
			http.Error(w, "Medication not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNegativeStock):
			http.Error(w, "Stock must be non-negative", http.StatusBadRequest)
		default:
			log.Printf("ERROR [inventory.UpdateStock] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.hub.Broadcast(events.EventInventoryUpdated, med)
	writeJSON(w, med)
}
