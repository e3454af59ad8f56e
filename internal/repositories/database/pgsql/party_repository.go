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
	"github.com/shopspring/decimal"
)

const partyColumns = `party_id, name, kind, payment_terms_days, credit_limit, default_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

// openItemQuery derives a party's open items: live posted lines carrying a
// document tag, less the sum of their payment applications. Reversing
// journals and reversed originals are both excluded; their lines offset each
// other in the ledger but neither is a payable/receivable item anymore.
// Applications recorded after the as-of date are ignored, so a historical
// aging run reproduces what was open on that date.
const openItemQuery = `
	SELECT t.transaction_id, t.journal_id, t.document_ref, t.document_date,
	       t.document_date + make_interval(days => p.payment_terms_days) AS due_date,
	       t.amount,
	       COALESCE(app.applied, 0) AS applied,
	       t.amount - COALESCE(app.applied, 0) AS remaining
	FROM transactions t
	JOIN journals j ON t.journal_id = j.journal_id
	JOIN parties p ON t.party_id = p.party_id
	LEFT JOIN (
		SELECT item_transaction_id, SUM(amount) AS applied
		FROM payment_applications
		WHERE created_at <= $2
		GROUP BY item_transaction_id
	) app ON app.item_transaction_id = t.transaction_id
	WHERE t.party_id = $1
	  AND t.document_date IS NOT NULL
	  AND t.document_date <= $2
	  AND j.status = 'POSTED'
	  AND j.original_journal_id IS NULL
	  AND t.amount - COALESCE(app.applied, 0) > 0
	ORDER BY due_date, t.document_date
`

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party and subledger data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryWithTx {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryWithTx
var _ portsrepo.PartyRepositoryWithTx = (*PgxPartyRepository)(nil)

// scanParty scans one party row in partyColumns order.
func scanParty(row pgx.Row) (models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID,
		&m.Name,
		&m.Kind,
		&m.PaymentTermsDays,
		&m.CreditLimit,
		&m.DefaultAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanOpenItems(rows pgx.Rows) ([]domain.OpenItem, error) {
	items := []domain.OpenItem{}
	for rows.Next() {
		var item domain.OpenItem
		err := rows.Scan(
			&item.TransactionID,
			&item.JournalID,
			&item.DocumentRef,
			&item.DocumentDate,
			&item.DueDate,
			&item.Amount,
			&item.Applied,
			&item.Remaining,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open item row: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating open item rows: %w", rows.Err())
	}
	return items, nil
}

// SaveParty inserts a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.Kind,
		m.PaymentTermsDays,
		m.CreditLimit,
		m.DefaultAccountID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: party with ID %s already exists", apperrors.ErrDuplicate, m.PartyID)
		}
		return fmt.Errorf("failed to save party %s: %w", m.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves a party by its ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`

	m, err := scanParty(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by ID %s: %w", partyID, err)
	}

	d := mapping.ToDomainParty(m)
	return &d, nil
}

// ListParties retrieves a paginated list of parties, optionally filtered by kind.
func (r *PgxPartyRepository) ListParties(ctx context.Context, kind *domain.PartyKind, limit int, offset int) ([]domain.Party, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE ($1::text IS NULL OR kind = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	var kindFilter *string
	if kind != nil {
		s := string(*kind)
		kindFilter = &s
	}

	rows, err := r.Pool.Query(ctx, query, kindFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", rows.Err())
	}

	return parties, nil
}

// UpdateParty updates an existing party's details.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		UPDATE parties
		SET name = $2, payment_terms_days = $3, credit_limit = $4, default_account_id = $5,
		    is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE party_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.PaymentTermsDays,
		m.CreditLimit,
		m.DefaultAccountID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update party %s: %w", m.PartyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateParty marks a party as inactive.
func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	query := `
		UPDATE parties
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE party_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, partyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate party %s: %w", partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindPartyByID(ctx, partyID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check party status after deactivation attempt for %s: %w", partyID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}

// FindOpenItemsByParty retrieves the party's open items as of a date.
func (r *PgxPartyRepository) FindOpenItemsByParty(ctx context.Context, partyID string, asOf time.Time) ([]domain.OpenItem, error) {
	rows, err := r.Pool.Query(ctx, openItemQuery+";", partyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query open items for party %s: %w", partyID, err)
	}
	defer rows.Close()

	return scanOpenItems(rows)
}

// FindOpenItemsByPartyForUpdate retrieves open items and locks the underlying
// transaction rows so concurrent payment applications serialize per item.
func (r *PgxPartyRepository) FindOpenItemsByPartyForUpdate(ctx context.Context, tx pgx.Tx, partyID string, asOf time.Time) ([]domain.OpenItem, error) {
	rows, err := tx.Query(ctx, openItemQuery+" FOR UPDATE OF t;", partyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query and lock open items for party %s: %w", partyID, err)
	}
	defer rows.Close()

	return scanOpenItems(rows)
}

// SumApplicationsByPayment returns the total already applied from a payment line.
func (r *PgxPartyRepository) SumApplicationsByPayment(ctx context.Context, tx pgx.Tx, paymentTransactionID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payment_applications WHERE payment_transaction_id = $1;`

	var total decimal.Decimal
	if err := tx.QueryRow(ctx, query, paymentTransactionID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum applications for payment %s: %w", paymentTransactionID, err)
	}
	return total, nil
}

// SavePaymentApplicationsInTx persists payment-application links.
func (r *PgxPartyRepository) SavePaymentApplicationsInTx(ctx context.Context, tx pgx.Tx, applications []domain.PaymentApplication) error {
	if len(applications) == 0 {
		return nil
	}

	query := `
		INSERT INTO payment_applications (application_id, party_id, payment_transaction_id, item_transaction_id, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, app := range applications {
		m := mapping.ToModelPaymentApplication(app)
		batch.Queue(query,
			m.ApplicationID,
			m.PartyID,
			m.PaymentTransactionID,
			m.ItemTransactionID,
			m.Amount,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute payment application batch: %w", err)
	}
	return nil
}
