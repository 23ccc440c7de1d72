package services

import (
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/platform/config"
)

// NewServiceContainer wires up all application services over the repository
// provider. The business service doubles as the authorizer every other
// business-scoped service consults.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	businessSvc := NewBusinessService(repos.BusinessRepo)
	authorizer := businessSvc.(portssvc.BusinessAuthorizerSvc)

	accountSvc := NewAccountService(repos.AccountRepo, WithBusinessAuthorizer(authorizer))
	userSvc := NewUserService(repos.UserRepo)

	container := &portssvc.ServiceContainer{
		Business: businessSvc,
		Account:  accountSvc,
		Contact:  NewContactService(repos.ContactRepo, authorizer),
		Invoice:  NewInvoiceService(repos.InvoiceRepo, repos.ContactRepo, authorizer),
		Bill:     NewBillService(repos.BillRepo, repos.ContactRepo, authorizer),
		Payment:  NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, repos.BillRepo, repos.ContactRepo, authorizer),
		User:     userSvc,
		Journal:  NewJournalService(repos.JournalRepo, accountSvc, repos.AccountRepo, businessSvc),
		Reporting: NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.ContactRepo,
			WithReportingBusinessAuthorizer(authorizer)),
		APIToken:           NewAPITokenService(repos.APITokenRepo, userSvc),
		TokenService:       NewTokenService(cfg, userSvc),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
	return container
}
