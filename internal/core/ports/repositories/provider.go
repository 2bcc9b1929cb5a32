package repositories

// RepositoryProvider bundles the repository facades for dependency injection
// into the service layer.
type RepositoryProvider struct {
	ExpenseRepo   ExpenseRepositoryFacade
	DebtRepo      DebtRepositoryFacade
	ApartmentRepo ApartmentRepositoryFacade
}
