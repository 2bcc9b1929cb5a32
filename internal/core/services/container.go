package services

import (
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/platform/config"
)

// NewServiceContainer wires the services with their repository dependencies.
// The apartment service is built first since every other service consults it
// for membership authorization.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	apartmentSvc := NewApartmentService(repos.ApartmentRepo)

	return &portssvc.ServiceContainer{
		Apartment: apartmentSvc,
		Expense:   NewExpenseService(repos.ExpenseRepo, apartmentSvc),
		Debt:      NewDebtService(repos.DebtRepo, apartmentSvc),
		Balance:   NewBalanceService(repos.ExpenseRepo, apartmentSvc),
		Settlement: NewSettlementService(
			repos.DebtRepo,
			apartmentSvc,
			cfg.SettlementMaxRetries,
			cfg.SettlementRetryBackoff,
		),
	}
}
