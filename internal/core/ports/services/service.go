package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Apartment  ApartmentSvcFacade
	Expense    ExpenseSvcFacade
	Debt       DebtSvcFacade
	Balance    BalanceSvcFacade
	Settlement SettlementSvcFacade
}
