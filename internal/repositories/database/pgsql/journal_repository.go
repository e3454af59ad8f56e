package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	"github.com/agrisuite/genfin_backend/internal/models"
	"github.com/agrisuite/genfin_backend/internal/utils/mapping"
	"github.com/agrisuite/genfin_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const journalColumns = `journal_id, journal_date, description, reference, status, posted_at, original_journal_id, reversing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, journal_id, account_id, amount, transaction_type, memo, party_id, document_ref, document_date, running_balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// scanJournal scans one journal row in journalColumns order.
func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.JournalDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.PostedAt,
		&m.OriginalJournalID,
		&m.ReversingJournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// scanTransaction scans one transaction row in transactionColumns order.
func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.JournalID,
		&m.AccountID,
		&m.Amount,
		&m.TransactionType,
		&m.Memo,
		&m.PartyID,
		&m.DocumentRef,
		&m.DocumentDate,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal persists a draft journal and its transaction lines. Drafts touch
// no account balances, so header and lines commit in one local transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SaveJournalInTx(ctx, tx, journal, transactions); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveJournalInTx persists a journal and its lines within an existing transaction.
func (r *PgxJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, transactions []domain.Transaction) error {
	m := mapping.ToModelJournal(journal)

	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, journalQuery,
		m.JournalID,
		m.JournalDate,
		m.Description,
		m.Reference,
		m.Status,
		m.PostedAt,
		m.OriginalJournalID,
		m.ReversingJournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}

	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	batch := &pgx.Batch{}
	for _, txn := range transactions {
		mt := mapping.ToModelTransaction(txn)
		batch.Queue(txnQuery,
			mt.TransactionID,
			mt.JournalID,
			mt.AccountID,
			mt.Amount,
			mt.TransactionType,
			mt.Memo,
			mt.PartyID,
			mt.DocumentRef,
			mt.DocumentDate,
			mt.RunningBalance,
			mt.CreatedAt,
			mt.CreatedBy,
			mt.LastUpdatedAt,
			mt.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute transaction batch for journal "+m.JournalID, err)
	}
	return nil
}

// MarkJournalPostedInTx transitions a journal to POSTED and stamps the
// per-line running balances computed under the account row locks.
func (r *PgxJournalRepository) MarkJournalPostedInTx(ctx context.Context, tx pgx.Tx, journalID string, postedAt time.Time, runningBalances map[string]decimal.Decimal, userID string) error {
	journalQuery := `
		UPDATE journals
		SET status = 'POSTED', posted_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, journalQuery, journalID, postedAt, postedAt, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal "+journalID+" posted", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Journal is missing or no longer a draft; the race lost here surfaces
		// as a state conflict.
		return fmt.Errorf("%w: journal %s is not a postable draft", apperrors.ErrStateConflict, journalID)
	}

	txnQuery := `
		UPDATE transactions
		SET running_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	batch := &pgx.Batch{}
	txnIDs := make([]string, 0, len(runningBalances))
	for txnID, balance := range runningBalances {
		batch.Queue(txnQuery, txnID, balance, postedAt, userID)
		txnIDs = append(txnIDs, txnID)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to stamp running balance for transaction %s: %w", txnIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: transaction %s not found during posting", apperrors.ErrNotFound, txnIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close running balance batch: %w", err)
	}
	return batchErr
}

// UpdateJournalStatusAndLinksInTx updates the status and reversal linkage of a journal.
func (r *PgxJournalRepository) UpdateJournalStatusAndLinksInTx(ctx context.Context, tx pgx.Tx, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, userID string, now time.Time) error {
	query := `
		UPDATE journals
		SET status = $2,
		    reversing_journal_id = COALESCE($3, reversing_journal_id),
		    original_journal_id = COALESCE($4, original_journal_id),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE journal_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, journalID, status, reversingJournalID, originalJournalID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status/links for journal "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	d := mapping.ToDomainJournal(m)
	return &d, nil
}

// FindJournalByIDForUpdate retrieves a journal and locks its row for update.
// Posting and voiding hold this lock so two callers cannot transition the
// same journal concurrently.
func (r *PgxJournalRepository) FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1 FOR UPDATE;`

	m, err := scanJournal(tx.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find and lock journal "+journalID, err)
	}

	d := mapping.ToDomainJournal(m)
	return &d, nil
}

// CountDraftJournalsInRange counts DRAFT journals dated within [from, to].
func (r *PgxJournalRepository) CountDraftJournalsInRange(ctx context.Context, tx pgx.Tx, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM journals
		WHERE status = 'DRAFT' AND journal_date >= $1 AND journal_date <= $2;
	`
	var count int64
	if err := tx.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count draft journals in range", err)
	}
	return count, nil
}

// FindTransactionsByJournalID retrieves all transactions associated with a specific journal.
func (r *PgxJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE journal_id = $1
		ORDER BY transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for journal "+journalID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for journal "+journalID, err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for journal "+journalID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// FindTransactionsByJournalIDs retrieves transactions for multiple journals, grouped by journal ID.
func (r *PgxJournalRepository) FindTransactionsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Transaction, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.Transaction{}, nil
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for journal batch", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.Transaction)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row during batch fetch", err)
		}
		grouped[m.JournalID] = append(grouped[m.JournalID], mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows during batch fetch", err)
	}

	return grouped, nil
}

// FindTransactionByID retrieves a single transaction line.
func (r *PgxJournalRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListJournals retrieves a paginated list of journals using token-based
// pagination, optionally filtered by status.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals`
	filterClause := `WHERE ($1::text IS NULL OR status = $1)`
	// Ordering must be stable for the cursor: journal_date with created_at as
	// tie-breaker, both descending.
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	var rows pgx.Rows
	var err error
	args := []interface{}{statusFilter}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", scanErr)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	var nextTokenVal *string
	if len(modelJournals) > limit {
		last := modelJournals[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		modelJournals = modelJournals[:limit]
	}

	journals := make([]domain.Journal, len(modelJournals))
	for i, m := range modelJournals {
		journals[i] = mapping.ToDomainJournal(m)
	}
	return journals, nextTokenVal, nil
}

// ListTransactionsByAccountID retrieves a paginated list of posted
// transactions for a specific account using token-based pagination.
func (r *PgxJournalRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT t.transaction_id, t.journal_id, t.account_id, t.amount, t.transaction_type, t.memo,
		       t.party_id, t.document_ref, t.document_date, t.running_balance,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by, j.journal_date
		FROM transactions t
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE t.account_id = $1 AND j.status <> 'DRAFT'
	`
	orderByClause := `ORDER BY j.journal_date DESC, t.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastJournalDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (j.journal_date, t.created_at) < ($2, $3)`
		args = append(args, lastJournalDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	type txnRow struct {
		txn         models.Transaction
		journalDate time.Time
	}
	scanned := make([]txnRow, 0, fetchLimit)
	for rows.Next() {
		var row txnRow
		scanErr := rows.Scan(
			&row.txn.TransactionID,
			&row.txn.JournalID,
			&row.txn.AccountID,
			&row.txn.Amount,
			&row.txn.TransactionType,
			&row.txn.Memo,
			&row.txn.PartyID,
			&row.txn.DocumentRef,
			&row.txn.DocumentDate,
			&row.txn.RunningBalance,
			&row.txn.CreatedAt,
			&row.txn.CreatedBy,
			&row.txn.LastUpdatedAt,
			&row.txn.LastUpdatedBy,
			&row.journalDate,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, scanErr)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.journalDate, last.txn.CreatedAt)
		nextTokenVal = &token
		scanned = scanned[:limit]
	}

	results := make([]models.Transaction, len(scanned))
	for i, row := range scanned {
		results[i] = row.txn
	}
	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}
