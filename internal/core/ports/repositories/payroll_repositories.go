package repositories

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PayrollReader defines read operations for payroll profile data
type PayrollReader interface {
	// FindProfileByEmployeeID retrieves an employee's tax profile.
	FindProfileByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollProfile, error)

	// FindProfileByEmployeeIDForUpdate retrieves a profile and locks its row.
	// Pay runs hold this lock while advancing YTD figures.
	FindProfileByEmployeeIDForUpdate(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.PayrollProfile, error)

	// ListProfiles retrieves a paginated list of payroll profiles.
	ListProfiles(ctx context.Context, limit int, offset int) ([]domain.PayrollProfile, error)
}

// PayrollWriter defines write operations for payroll profile data
type PayrollWriter interface {
	// SaveProfile persists a new payroll profile.
	SaveProfile(ctx context.Context, profile domain.PayrollProfile) error

	// UpdateProfile updates an existing profile's details.
	UpdateProfile(ctx context.Context, profile domain.PayrollProfile) error

	// AdvanceYTDInTx adds the given gross and FICA wage amounts to an
	// employee's year-to-date figures within the pay-run transaction.
	AdvanceYTDInTx(ctx context.Context, tx pgx.Tx, employeeID string, grossDelta, ficaWageDelta decimal.Decimal, userID string, now time.Time) error
}

// PayrollRepositoryFacade combines all payroll-related repository interfaces
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
}

// PayrollRepositoryWithTx extends PayrollRepositoryFacade with transaction capabilities
type PayrollRepositoryWithTx interface {
	PayrollRepositoryFacade
	TransactionManager
}
