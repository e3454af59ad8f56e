package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface.
// All report queries exclude drafts, reversed originals, and their reversing
// journals: the latter two cancel in the ledger and only add noise to reports.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// BeginSnapshot starts a read-only repeatable-read transaction. Reports that
// issue several queries see one consistent ledger state.
func (r *reportingRepository) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin report snapshot", err)
	}
	return tx, nil
}

// GetTrialBalanceData retrieves signed per-account balances from posted lines
// dated on or before asOf. Positive nets land in the debit column, negative
// nets in the credit column.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.account_number,
			a.name AS account_name,
			a.account_type,
			SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END) AS net
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date <= $1
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
		GROUP BY a.account_id, a.account_number, a.name, a.account_type
		ORDER BY a.account_number
	`

	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		var net decimal.Decimal

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountNumber,
			&row.AccountName,
			&accountType,
			&net,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		if net.IsNegative() {
			row.Credit = net.Neg()
			row.Debit = decimal.Zero
		} else {
			row.Debit = net
			row.Credit = decimal.Zero
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}

// GetProfitAndLossData retrieves per-account revenue and expense nets for
// posted lines dated within [from, to].
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.classification,
			a.account_id,
			a.account_number,
			a.name,
			SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END) AS net
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date BETWEEN $1 AND $2
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
			AND a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_type, a.classification, a.account_id, a.account_number, a.name
		ORDER BY a.account_number
	`

	rows, err := tx.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}

	for rows.Next() {
		var accountType, classification string
		var amount domain.AccountAmount
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &classification, &amount.AccountID, &amount.AccountNumber, &amount.Name, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		amount.Classification = domain.AccountClassification(classification)
		switch domain.AccountType(accountType) {
		case domain.Revenue:
			// Credits increase revenue, so invert the debit-positive net.
			amount.NetAmount = net.Neg()
			revenue = append(revenue, amount)
		case domain.Expense:
			amount.NetAmount = net
			expenses = append(expenses, amount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves per-account nets as of a date, grouped by
// account classification. Credit-normal groups are sign-flipped for display.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, tx pgx.Tx, asOf time.Time) (map[domain.AccountClassification][]domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.classification,
			a.account_id,
			a.account_number,
			a.name,
			SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END) AS net
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date <= $1
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_type, a.classification, a.account_id, a.account_number, a.name
		ORDER BY a.account_number
	`

	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	grouped := make(map[domain.AccountClassification][]domain.AccountAmount)
	for rows.Next() {
		var accountType, classification string
		var amount domain.AccountAmount
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &classification, &amount.AccountID, &amount.AccountNumber, &amount.Name, &net); err != nil {
			return nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		if domain.AccountType(accountType).IsDebitNormal() {
			amount.NetAmount = net
		} else {
			amount.NetAmount = net.Neg()
		}

		cls := domain.AccountClassification(classification)
		amount.Classification = cls
		grouped[cls] = append(grouped[cls], amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	return grouped, nil
}

// GetCashBalance returns the combined balance of CASH-classified accounts from
// posted lines dated strictly before the given date.
func (r *reportingRepository) GetCashBalance(ctx context.Context, tx pgx.Tx, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END), 0)
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date < $1
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
			AND a.classification = 'CASH'
	`

	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, query, before).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("error querying cash balance: %w", err)
	}
	return balance, nil
}

// GetCashFlowData retrieves, for posted journals in [from, to] that touch a
// CASH-classified account, the cash effect grouped by counter-account. Each
// non-cash line's credit-positive net equals the cash it brought in (or, when
// negative, paid out), because the journal balances.
func (r *reportingRepository) GetCashFlowData(ctx context.Context, tx pgx.Tx, from, to time.Time) (map[domain.AccountClassification][]domain.AccountAmount, error) {
	query := `
		SELECT
			a.classification,
			a.account_id,
			a.account_number,
			a.name,
			SUM(CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE -t.amount END) AS cash_effect
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date BETWEEN $1 AND $2
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
			AND a.classification <> 'CASH'
			AND t.journal_id IN (
				SELECT t2.journal_id
				FROM transactions t2
				JOIN accounts a2 ON t2.account_id = a2.account_id
				WHERE a2.classification = 'CASH'
			)
		GROUP BY a.classification, a.account_id, a.account_number, a.name
		ORDER BY a.account_number
	`

	rows, err := tx.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying cash flow data: %w", err)
	}
	defer rows.Close()

	grouped := make(map[domain.AccountClassification][]domain.AccountAmount)
	for rows.Next() {
		var classification string
		var amount domain.AccountAmount

		if err := rows.Scan(&classification, &amount.AccountID, &amount.AccountNumber, &amount.Name, &amount.NetAmount); err != nil {
			return nil, fmt.Errorf("error scanning cash flow row: %w", err)
		}

		cls := domain.AccountClassification(classification)
		amount.Classification = cls
		grouped[cls] = append(grouped[cls], amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash flow rows: %w", err)
	}

	return grouped, nil
}
