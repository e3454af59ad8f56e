package pgsql

import (
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	partyRepo := newPgxPartyRepository(dbPool)
	bankRepo := newPgxBankRepository(dbPool)
	payrollRepo := newPgxPayrollRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		PeriodRepo:    periodRepo,
		PartyRepo:     partyRepo,
		BankRepo:      bankRepo,
		PayrollRepo:   payrollRepo,
		ReportingRepo: reportingRepo,
	}
}
