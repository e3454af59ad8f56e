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

const payrollProfileColumns = `employee_id, employee_name, filing_status, allowances, pay_frequency, pay_rate, ytd_gross, ytd_fica_wages, suta_rate, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll profile data.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryWithTx {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPayrollRepository implements portsrepo.PayrollRepositoryWithTx
var _ portsrepo.PayrollRepositoryWithTx = (*PgxPayrollRepository)(nil)

func scanPayrollProfile(row pgx.Row) (models.PayrollProfile, error) {
	var m models.PayrollProfile
	err := row.Scan(
		&m.EmployeeID,
		&m.EmployeeName,
		&m.FilingStatus,
		&m.Allowances,
		&m.PayFrequency,
		&m.PayRate,
		&m.YTDGross,
		&m.YTDFICAWages,
		&m.SUTARate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProfile inserts a new payroll profile.
func (r *PgxPayrollRepository) SaveProfile(ctx context.Context, profile domain.PayrollProfile) error {
	m := mapping.ToModelPayrollProfile(profile)

	query := `
		INSERT INTO payroll_profiles (` + payrollProfileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.EmployeeName,
		m.FilingStatus,
		m.Allowances,
		m.PayFrequency,
		m.PayRate,
		m.YTDGross,
		m.YTDFICAWages,
		m.SUTARate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: payroll profile for employee %s already exists", apperrors.ErrDuplicate, m.EmployeeID)
		}
		return fmt.Errorf("failed to save payroll profile for employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

// FindProfileByEmployeeID retrieves an employee's tax profile.
func (r *PgxPayrollRepository) FindProfileByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollProfile, error) {
	query := `SELECT ` + payrollProfileColumns + ` FROM payroll_profiles WHERE employee_id = $1;`

	m, err := scanPayrollProfile(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payroll profile for employee %s: %w", employeeID, err)
	}

	d := mapping.ToDomainPayrollProfile(m)
	return &d, nil
}

// FindProfileByEmployeeIDForUpdate retrieves a profile and locks its row.
func (r *PgxPayrollRepository) FindProfileByEmployeeIDForUpdate(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.PayrollProfile, error) {
	query := `SELECT ` + payrollProfileColumns + ` FROM payroll_profiles WHERE employee_id = $1 FOR UPDATE;`

	m, err := scanPayrollProfile(tx.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find and lock payroll profile for employee %s: %w", employeeID, err)
	}

	d := mapping.ToDomainPayrollProfile(m)
	return &d, nil
}

// ListProfiles retrieves a paginated list of payroll profiles.
func (r *PgxPayrollRepository) ListProfiles(ctx context.Context, limit int, offset int) ([]domain.PayrollProfile, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + payrollProfileColumns + `
		FROM payroll_profiles
		WHERE is_active = TRUE
		ORDER BY employee_name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.PayrollProfile{}
	for rows.Next() {
		m, err := scanPayrollProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll profile row: %w", err)
		}
		profiles = append(profiles, mapping.ToDomainPayrollProfile(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payroll profile rows: %w", rows.Err())
	}

	return profiles, nil
}

// UpdateProfile updates an existing profile's details. YTD figures only move
// through AdvanceYTDInTx.
func (r *PgxPayrollRepository) UpdateProfile(ctx context.Context, profile domain.PayrollProfile) error {
	m := mapping.ToModelPayrollProfile(profile)

	query := `
		UPDATE payroll_profiles
		SET employee_name = $2, filing_status = $3, allowances = $4, pay_frequency = $5,
		    pay_rate = $6, suta_rate = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE employee_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.EmployeeName,
		m.FilingStatus,
		m.Allowances,
		m.PayFrequency,
		m.PayRate,
		m.SUTARate,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update payroll profile %s: %w", m.EmployeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdvanceYTDInTx adds gross and FICA wage deltas to an employee's YTD figures.
func (r *PgxPayrollRepository) AdvanceYTDInTx(ctx context.Context, tx pgx.Tx, employeeID string, grossDelta, ficaWageDelta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE payroll_profiles
		SET ytd_gross = ytd_gross + $2, ytd_fica_wages = ytd_fica_wages + $3, last_updated_at = $4, last_updated_by = $5
		WHERE employee_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, employeeID, grossDelta, ficaWageDelta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to advance YTD figures for employee %s: %w", employeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
