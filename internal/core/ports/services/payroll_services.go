package services

import (
	"context"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/dto"
)

// PayrollProfileSvc defines CRUD operations for employee tax profiles
type PayrollProfileSvc interface {
	// CreateProfile registers a new employee tax profile.
	CreateProfile(ctx context.Context, req dto.CreatePayrollProfileRequest, userID string) (*domain.PayrollProfile, error)

	// GetProfile retrieves an employee's tax profile.
	GetProfile(ctx context.Context, employeeID string) (*domain.PayrollProfile, error)

	// ListProfiles retrieves a paginated list of profiles.
	ListProfiles(ctx context.Context, limit int, offset int) ([]domain.PayrollProfile, error)

	// UpdateProfile updates an existing profile's details.
	UpdateProfile(ctx context.Context, employeeID string, req dto.UpdatePayrollProfileRequest, userID string) (*domain.PayrollProfile, error)
}

// PayrollCalcSvc defines the tax calculation and pay-run operations
type PayrollCalcSvc interface {
	// CalculateWithholding computes the full tax breakdown for one paycheck
	// without recording anything.
	CalculateWithholding(ctx context.Context, req dto.CalculateWithholdingRequest) (*domain.TaxWithholding, error)

	// RecordPayRun calculates withholding for each employee, advances YTD
	// figures, and records the run as a draft journal for review.
	RecordPayRun(ctx context.Context, req dto.RecordPayRunRequest, userID string) (*dto.RecordPayRunResponse, error)
}

// PayrollSvcFacade combines all payroll-related service interfaces
type PayrollSvcFacade interface {
	PayrollProfileSvc
	PayrollCalcSvc
}
