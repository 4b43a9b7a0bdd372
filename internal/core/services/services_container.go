package services

import (
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Leaves first: the registry and the recorder
	container.Account = NewAccountRegistry(repos.AccountRepo, repos.TransactionRepo)
	recorder := NewTransactionRecorder(repos.AccountRepo, repos.TransactionRepo)
	container.Transaction = recorder

	// handlers only read records; writers get the recorder directly
	container.Transfer = NewTransferCoordinator(container.Account, recorder, cfg.StepTimeout)
	container.Operation = NewEffectOrchestrator(repos.OperationRepo, container.Account, recorder, cfg.StepTimeout)
	container.Timeline = NewTimelineAggregator(repos.ProductHistoryRepo)

	return container
}
