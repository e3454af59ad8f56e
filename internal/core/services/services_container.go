package services

import (
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/utils/banking"
	"github.com/agrisuite/genfin_backend/internal/utils/payroll"
	"github.com/agrisuite/genfin_backend/pkg/config"
)

// NewServiceContainer wires every service with its repositories and the
// configuration-driven parameters (employer tax rates, ACH originator
// identity).
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	taxCfg := payroll.Config{
		FUTARate:     cfg.FUTARate,
		FUTAWageBase: cfg.FUTAWageBase,
		SUTARate:     cfg.SUTARate,
		SUTAWageBase: cfg.SUTAWageBase,
	}

	achParams := banking.FileParams{
		ImmediateDestination: cfg.ACHImmediateDestination,
		ImmediateOrigin:      cfg.ACHImmediateOrigin,
		DestinationName:      cfg.ACHDestinationName,
		OriginName:           cfg.ACHOriginName,
		CompanyName:          cfg.ACHCompanyName,
		CompanyID:            cfg.ACHCompanyID,
		ODFIRouting:          cfg.ACHODFIRouting,
	}

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo),
		Journal:   NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.PeriodRepo, repos.PartyRepo),
		Period:    NewPeriodService(repos.PeriodRepo, repos.JournalRepo, repos.AccountRepo, repos.ReportingRepo),
		Reporting: NewReportingService(repos.ReportingRepo),
		Subledger: NewSubledgerService(repos.PartyRepo, repos.JournalRepo),
		Payroll:   NewPayrollService(repos.PayrollRepo, repos.JournalRepo, repos.AccountRepo, taxCfg),
		Banking:   NewBankingService(repos.BankRepo, repos.AccountRepo, achParams),
	}
}
