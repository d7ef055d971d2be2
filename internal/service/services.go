package service

import (
	"github.com/dom/rx-portal/internal/config"
	"github.com/dom/rx-portal/internal/repository"
	"github.com/dom/rx-portal/internal/store"
)

type Services struct {
	Auth         *AuthService
	Prescription *PrescriptionService
	Inventory    *InventoryService
	Stats        *StatsService
}

func NewServices(repos *repository.Repositories, st *store.Store, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, repos.Audit, cfg),
		Prescription: NewPrescriptionService(st, repos.User, repos.Audit),
		Inventory:    NewInventoryService(st, repos.Audit),
		Stats:        NewStatsService(st, cfg),
	}
}
