package repositories

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PeriodReader defines read operations for fiscal period data
type PeriodReader interface {
	// FindPeriodByID retrieves a specific fiscal period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period whose date range contains the given date.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	// FindPeriodForDateForShare retrieves the period containing the date and
	// takes a shared row lock. Posting holds this lock so a concurrent close
	// of the same period serializes against it.
	FindPeriodForDateForShare(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalPeriod, error)

	// FindPeriodByIDForUpdate retrieves a period and locks its row for update.
	// Closing holds this lock to exclude concurrent postings into the period.
	FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID string) (*domain.FiscalPeriod, error)

	// FindOverlappingPeriod retrieves any period whose range overlaps [start, end].
	FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves fiscal periods ordered by start date descending.
	ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal period data
type PeriodWriter interface {
	// SavePeriod persists a new fiscal period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// MarkPeriodClosedInTx transitions a period to CLOSED and records the
	// closing journal, within the close transaction.
	MarkPeriodClosedInTx(ctx context.Context, tx pgx.Tx, periodID string, closingJournalID string, userID string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
