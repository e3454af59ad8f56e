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

const periodColumns = `period_id, name, start_date, end_date, status, closed_at, closing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryWithTx
var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

// scanPeriod scans one fiscal period row in periodColumns order.
func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedAt,
		&m.ClosingJournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new fiscal period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.ClosedAt,
		m.ClosingJournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: fiscal period %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save fiscal period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a fiscal period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period by ID %s: %w", periodID, err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// FindPeriodForDate retrieves the period whose date range contains the given date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE start_date <= $1 AND end_date >= $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period for date %s: %w", date.Format("2006-01-02"), err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// FindPeriodForDateForShare retrieves the period containing the date under a
// shared row lock. Posting holds the share lock for the life of the posting
// transaction; a concurrent close takes the exclusive lock and must wait.
func (r *PgxPeriodRepository) FindPeriodForDateForShare(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE start_date <= $1 AND end_date >= $1 FOR SHARE;`

	m, err := scanPeriod(tx.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find and share-lock fiscal period for date %s: %w", date.Format("2006-01-02"), err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// FindPeriodByIDForUpdate retrieves a period and locks its row for update.
func (r *PgxPeriodRepository) FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`

	m, err := scanPeriod(tx.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find and lock fiscal period %s: %w", periodID, err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// FindOverlappingPeriod retrieves any period whose range overlaps [start, end].
func (r *PgxPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE start_date <= $2 AND end_date >= $1
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check for overlapping fiscal period: %w", err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// ListPeriods retrieves fiscal periods ordered by start date descending.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FiscalPeriod, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		ORDER BY start_date DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", rows.Err())
	}

	return periods, nil
}

// MarkPeriodClosedInTx transitions a period to CLOSED and records the closing
// journal. An empty closingJournalID means the period had no revenue or
// expense activity, so no closing journal was needed.
func (r *PgxPeriodRepository) MarkPeriodClosedInTx(ctx context.Context, tx pgx.Tx, periodID string, closingJournalID string, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET status = 'CLOSED', closed_at = $2, closing_journal_id = NULLIF($3, ''), last_updated_at = $2, last_updated_by = $4
		WHERE period_id = $1 AND status = 'OPEN';
	`
	cmdTag, err := tx.Exec(ctx, query, periodID, now, closingJournalID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark fiscal period %s closed: %w", periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s is not open", apperrors.ErrStateConflict, periodID)
	}
	return nil
}
