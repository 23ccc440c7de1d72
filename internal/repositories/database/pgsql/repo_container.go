package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		ContactRepo:   newPgxContactRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		BillRepo:      newPgxBillRepository(dbPool),
		PaymentRepo:   newPgxPaymentRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool, accountRepo),
		BusinessRepo:  newPgxBusinessRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		APITokenRepo:  newPgxAPITokenRepository(dbPool),
	}
}
