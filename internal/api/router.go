package api

import (
	"net/http"

	"github.com/dom/rx-portal/internal/api/handlers"
	"github.com/dom/rx-portal/internal/api/middleware"
	"github.com/dom/rx-portal/internal/config"
	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/events"
	"github.com/dom/rx-portal/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *events.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	prescriptionHandler := handlers.NewPrescriptionHandler(services.Prescription, hub)
	inventoryHandler := handlers.NewInventoryHandler(services.Inventory, hub)
	statsHandler := handlers.NewStatsHandler(services.Stats)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(services.Auth, cfg))

		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", authHandler.Me)
				r.Put("/role", authHandler.UpdateRole)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/prescriptions", func(r chi.Router) {
				r.Post("/", prescriptionHandler.Create)
				r.Get("/", prescriptionHandler.List)
				r.Get("/{id}", prescriptionHandler.Get)
				r.Post("/{id}/complete", prescriptionHandler.Complete)
			})

			r.Route("/medications", func(r chi.Router) {
				r.Get("/", inventoryHandler.List)
				r.Get("/{id}", inventoryHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RolePharmacist))
					r.Put("/{id}/stock", inventoryHandler.UpdateStock)
				})
			})

			r.Route("/stats", func(r chi.Router) {
				r.With(middleware.RequireRole(domain.RoleDoctor)).Get("/doctor", statsHandler.Doctor)
				r.With(middleware.RequireRole(domain.RolePharmacist)).Get("/pharmacy", statsHandler.Pharmacy)
			})

			r.With(middleware.RequireRole(domain.RoleDoctor)).Get("/patients", statsHandler.Patients)
		})

		// WebSocket event feed
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
