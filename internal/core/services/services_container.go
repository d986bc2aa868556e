package services

import (
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_periods/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, periodOptions ...PeriodServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The validator and reconciler are stateless and shared with the period service
	container.Overlap = NewOverlapValidator()
	container.Reconciler = NewClosingReconciler(repos.LedgerRepo, repos.JournalRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, container.Overlap, container.Reconciler, periodOptions...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.OverlapValidatorSvc  = (*overlapValidator)(nil)
	_ portssvc.ClosingReconcilerSvc = (*closingReconciler)(nil)
)
