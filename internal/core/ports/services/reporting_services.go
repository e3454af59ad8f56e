package services

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Every report runs against a consistent snapshot and is checked for
// internal consistency before it is returned.
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date.
	// The report is refused if total debits do not equal total credits.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss generates a profit and loss report for a period, with an
	// optional comparison against the preceding period of the same length.
	ProfitAndLoss(ctx context.Context, from, to time.Time, withPrior bool) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet as of a specific date. The report
	// is refused unless Assets = Liabilities + Equity holds exactly.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// CashFlow generates a cash-flow statement for a period, classifying cash
	// movements by the counter-account's classification.
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)

	// Ratios computes the standard financial ratios as of a date. Divisions by
	// zero yield undefined ratios, never infinities.
	Ratios(ctx context.Context, asOf time.Time) (*domain.RatioReport, error)
}
