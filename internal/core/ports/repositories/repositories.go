package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	ContactRepo   ContactRepository
	InvoiceRepo   InvoiceRepository
	BillRepo      BillRepository
	PaymentRepo   PaymentRepository
	UserRepo      UserRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	BusinessRepo  BusinessRepositoryFacade
	ReportingRepo ReportingRepository
	APITokenRepo  APITokenRepository
}
