package dto

import (
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
)

// CreatePeriodRequest defines the data needed to open a new fiscal period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// ClosePeriodRequest names the equity account that receives the period's
// revenue/expense delta as part of the closing journal.
type ClosePeriodRequest struct {
	RetainedEarningsAccountID string `json:"retainedEarningsAccountID" binding:"required"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID         string              `json:"periodID"`
	Name             string              `json:"name"`
	StartDate        time.Time           `json:"startDate"`
	EndDate          time.Time           `json:"endDate"`
	Status           domain.PeriodStatus `json:"status"`
	ClosedAt         *time.Time          `json:"closedAt,omitempty"`
	ClosingJournalID *string             `json:"closingJournalID,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:         p.PeriodID,
		Name:             p.Name,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		Status:           p.Status,
		ClosedAt:         p.ClosedAt,
		ClosingJournalID: p.ClosingJournalID,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}

// ToListPeriodResponse converts a slice of domain.FiscalPeriod to PeriodResponse DTOs.
func ToListPeriodResponse(periods []domain.FiscalPeriod) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToPeriodResponse(&p)
	}
	return res
}
