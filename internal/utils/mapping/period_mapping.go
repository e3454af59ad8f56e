package mapping

import (
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:         d.PeriodID,
		Name:             d.Name,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		Status:           models.PeriodStatus(d.Status),
		ClosedAt:         d.ClosedAt,
		ClosingJournalID: d.ClosingJournalID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:         m.PeriodID,
		Name:             m.Name,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Status:           domain.PeriodStatus(m.Status),
		ClosedAt:         m.ClosedAt,
		ClosingJournalID: m.ClosingJournalID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
