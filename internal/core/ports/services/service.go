package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account            AccountSvcFacade
	Contact            ContactSvcFacade
	Invoice            InvoiceSvcFacade
	Bill               BillSvcFacade
	Payment            PaymentSvcFacade
	User               UserSvcFacade
	Journal            JournalSvcFacade
	Business           BusinessSvcFacade
	Reporting          ReportingService
	APIToken           APITokenSvc
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
