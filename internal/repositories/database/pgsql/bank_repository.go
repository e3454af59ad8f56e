package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	"github.com/agrisuite/genfin_backend/internal/models"
	"github.com/agrisuite/genfin_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankAccountColumns = `bank_account_id, name, routing_number, account_number, gl_account_id, next_check_number, is_active, created_at, created_by, last_updated_at, last_updated_by`

const checkColumns = `check_id, bank_account_id, check_number, payee_name, amount, check_date, micr_line, voided, created_at, created_by, last_updated_at, last_updated_by`

const achBatchColumns = `batch_id, bank_account_id, sec_code, company_entry_description, effective_date, entry_count, total_credit, total_debit, file_contents, generated_at, created_at, created_by, last_updated_at, last_updated_by`

const achEntryColumns = `entry_id, batch_id, transaction_code, routing_number, account_number, amount, receiver_id, receiver_name, trace_number`

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank accounts, checks, and ACH batches.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryWithTx {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBankRepository implements portsrepo.BankRepositoryWithTx
var _ portsrepo.BankRepositoryWithTx = (*PgxBankRepository)(nil)

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.Name,
		&m.RoutingNumber,
		&m.AccountNumber,
		&m.GLAccountID,
		&m.NextCheckNumber,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanCheck(row pgx.Row) (models.Check, error) {
	var m models.Check
	err := row.Scan(
		&m.CheckID,
		&m.BankAccountID,
		&m.CheckNumber,
		&m.PayeeName,
		&m.Amount,
		&m.Date,
		&m.MICRLine,
		&m.Voided,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanACHBatch(row pgx.Row) (models.ACHBatch, error) {
	var m models.ACHBatch
	err := row.Scan(
		&m.BatchID,
		&m.BankAccountID,
		&m.SECCode,
		&m.CompanyEntryDesc,
		&m.EffectiveDate,
		&m.EntryCount,
		&m.TotalCredit,
		&m.TotalDebit,
		&m.FileContents,
		&m.GeneratedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBankAccount inserts a new bank account.
func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID,
		m.Name,
		m.RoutingNumber,
		m.AccountNumber,
		m.GLAccountID,
		m.NextCheckNumber,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: bank account already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save bank account %s: %w", m.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`

	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account by ID %s: %w", bankAccountID, err)
	}

	d := mapping.ToDomainBankAccount(m)
	return &d, nil
}

// FindBankAccountByIDForUpdate retrieves a bank account and locks its row.
// The lock serializes check-number assignment.
func (r *PgxBankRepository) FindBankAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1 FOR UPDATE;`

	m, err := scanBankAccount(tx.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find and lock bank account %s: %w", bankAccountID, err)
	}

	d := mapping.ToDomainBankAccount(m)
	return &d, nil
}

// ListBankAccounts retrieves registered bank accounts.
func (r *PgxBankRepository) ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE is_active = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", rows.Err())
	}

	return accounts, nil
}

// UpdateBankAccount updates an existing bank account's details.
func (r *PgxBankRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	query := `
		UPDATE bank_accounts
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bank_account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BankAccountID,
		m.Name,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update bank account %s: %w", m.BankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdvanceCheckNumberInTx moves the next-check-number counter forward. The
// guard in the WHERE clause keeps the counter monotonic even if callers race.
func (r *PgxBankRepository) AdvanceCheckNumberInTx(ctx context.Context, tx pgx.Tx, bankAccountID string, nextCheckNumber int64, userID string, now time.Time) error {
	query := `
		UPDATE bank_accounts
		SET next_check_number = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bank_account_id = $1 AND next_check_number < $2;
	`
	cmdTag, err := tx.Exec(ctx, query, bankAccountID, nextCheckNumber, now, userID)
	if err != nil {
		return fmt.Errorf("failed to advance check number for bank account %s: %w", bankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: check number counter for bank account %s would move backwards", apperrors.ErrStateConflict, bankAccountID)
	}
	return nil
}

// SaveCheckInTx persists a newly issued check within the issuance transaction.
func (r *PgxBankRepository) SaveCheckInTx(ctx context.Context, tx pgx.Tx, check domain.Check) error {
	m := mapping.ToModelCheck(check)

	query := `
		INSERT INTO checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.CheckID,
		m.BankAccountID,
		m.CheckNumber,
		m.PayeeName,
		m.Amount,
		m.Date,
		m.MICRLine,
		m.Voided,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: check number %d already issued on this account", apperrors.ErrDuplicate, m.CheckNumber)
		}
		return fmt.Errorf("failed to save check %s: %w", m.CheckID, err)
	}
	return nil
}

// FindCheckByID retrieves a check by its ID.
func (r *PgxBankRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE check_id = $1;`

	m, err := scanCheck(r.Pool.QueryRow(ctx, query, checkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check by ID %s: %w", checkID, err)
	}

	d := mapping.ToDomainCheck(m)
	return &d, nil
}

// ListChecksByBankAccount retrieves checks for a bank account, newest first.
func (r *PgxBankRepository) ListChecksByBankAccount(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.Check, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + checkColumns + `
		FROM checks
		WHERE bank_account_id = $1
		ORDER BY check_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, bankAccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks for bank account %s: %w", bankAccountID, err)
	}
	defer rows.Close()

	checks := []domain.Check{}
	for rows.Next() {
		m, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check row: %w", err)
		}
		checks = append(checks, mapping.ToDomainCheck(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating check rows: %w", rows.Err())
	}

	return checks, nil
}

// MarkCheckVoided flags a check as voided. The row and its number are kept.
func (r *PgxBankRepository) MarkCheckVoided(ctx context.Context, checkID string, userID string, now time.Time) error {
	query := `
		UPDATE checks
		SET voided = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE check_id = $1 AND voided = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, checkID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void check %s: %w", checkID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindCheckByID(ctx, checkID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check status after void attempt for %s: %w", checkID, findErr)
		}
		return fmt.Errorf("%w: check %s is already voided", apperrors.ErrStateConflict, checkID)
	}
	return nil
}

// SaveACHBatch persists a generated batch, its entries, and the rendered file
// contents in one transaction. There is deliberately no update counterpart.
func (r *PgxBankRepository) SaveACHBatch(ctx context.Context, batch domain.ACHBatch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelACHBatch(batch)

	batchQuery := `
		INSERT INTO ach_batches (` + achBatchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, batchQuery,
		m.BatchID,
		m.BankAccountID,
		m.SECCode,
		m.CompanyEntryDesc,
		m.EffectiveDate,
		m.EntryCount,
		m.TotalCredit,
		m.TotalDebit,
		m.FileContents,
		m.GeneratedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ACH batch %s: %w", m.BatchID, err)
	}

	entryQuery := `
		INSERT INTO ach_entries (` + achEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	pgBatch := &pgx.Batch{}
	for _, entry := range batch.Entries {
		me := mapping.ToModelACHEntry(batch.BatchID, entry)
		pgBatch.Queue(entryQuery,
			me.EntryID,
			me.BatchID,
			me.TransactionCode,
			me.RoutingNumber,
			me.AccountNumber,
			me.Amount,
			me.ReceiverID,
			me.ReceiverName,
			me.TraceNumber,
		)
	}

	br := tx.SendBatch(ctx, pgBatch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute ACH entry batch for %s: %w", m.BatchID, err)
	}

	return r.Commit(ctx, tx)
}

// FindACHBatchByID retrieves a batch header with its entries.
func (r *PgxBankRepository) FindACHBatchByID(ctx context.Context, batchID string) (*domain.ACHBatch, error) {
	query := `SELECT ` + achBatchColumns + ` FROM ach_batches WHERE batch_id = $1;`

	m, err := scanACHBatch(r.Pool.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ACH batch by ID %s: %w", batchID, err)
	}

	entryQuery := `SELECT ` + achEntryColumns + ` FROM ach_entries WHERE batch_id = $1 ORDER BY trace_number;`
	rows, err := r.Pool.Query(ctx, entryQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for ACH batch %s: %w", batchID, err)
	}
	defer rows.Close()

	d := mapping.ToDomainACHBatch(m)
	for rows.Next() {
		var me models.ACHEntry
		err := rows.Scan(
			&me.EntryID,
			&me.BatchID,
			&me.TransactionCode,
			&me.RoutingNumber,
			&me.AccountNumber,
			&me.Amount,
			&me.ReceiverID,
			&me.ReceiverName,
			&me.TraceNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ACH entry row for batch %s: %w", batchID, err)
		}
		d.Entries = append(d.Entries, mapping.ToDomainACHEntry(me))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ACH entry rows for batch %s: %w", batchID, rows.Err())
	}

	return &d, nil
}

// ListACHBatches retrieves batch headers for a bank account, newest first.
func (r *PgxBankRepository) ListACHBatches(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.ACHBatch, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + achBatchColumns + `
		FROM ach_batches
		WHERE bank_account_id = $1
		ORDER BY generated_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, bankAccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ACH batches for bank account %s: %w", bankAccountID, err)
	}
	defer rows.Close()

	batches := []domain.ACHBatch{}
	for rows.Next() {
		m, err := scanACHBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ACH batch row: %w", err)
		}
		batches = append(batches, mapping.ToDomainACHBatch(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ACH batch rows: %w", rows.Err())
	}

	return batches, nil
}
