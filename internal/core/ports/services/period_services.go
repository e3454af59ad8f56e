package services

import (
	"context"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/dto"
)

// PeriodReaderSvc defines read operations for fiscal period data
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a specific fiscal period.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves fiscal periods ordered by start date descending.
	ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FiscalPeriod, error)
}

// PeriodWriterSvc defines write operations for fiscal period data
type PeriodWriterSvc interface {
	// CreatePeriod opens a new fiscal period. Ranges may not overlap an
	// existing period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// ClosePeriod runs the year-end close: zero every revenue and expense
	// account into retained earnings via a generated closing journal, then
	// seal the period. Closing is forward-only.
	ClosePeriod(ctx context.Context, periodID string, req dto.ClosePeriodRequest, userID string) (*domain.FiscalPeriod, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
