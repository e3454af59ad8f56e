package repositories

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving financial report data.
// Reports that issue multiple queries run them inside a repeatable-read
// snapshot transaction so a posting that commits mid-report cannot skew the
// totals; BeginSnapshot opens that transaction.
type ReportingRepository interface {
	// BeginSnapshot starts a read-only repeatable-read transaction.
	BeginSnapshot(ctx context.Context) (pgx.Tx, error)

	// Commit commits a snapshot transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a snapshot transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error

	// GetTrialBalanceData retrieves signed per-account balances from posted
	// lines dated on or before asOf.
	GetTrialBalanceData(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves per-account revenue and expense nets for
	// posted lines dated within [from, to].
	GetProfitAndLossData(ctx context.Context, tx pgx.Tx, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData retrieves per-account nets as of a date, grouped by
	// account classification.
	GetBalanceSheetData(ctx context.Context, tx pgx.Tx, asOf time.Time) (map[domain.AccountClassification][]domain.AccountAmount, error)

	// GetCashBalance returns the combined balance of CASH-classified accounts
	// from posted lines dated strictly before the given date.
	GetCashBalance(ctx context.Context, tx pgx.Tx, before time.Time) (decimal.Decimal, error)

	// GetCashFlowData retrieves, for posted journals in [from, to] that touch a
	// CASH-classified account, the cash deltas grouped by counter-account.
	GetCashFlowData(ctx context.Context, tx pgx.Tx, from, to time.Time) (map[domain.AccountClassification][]domain.AccountAmount, error)
}
