package mapping

import (
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/models"
)

// ToModelPayrollProfile converts a domain PayrollProfile to its model.
func ToModelPayrollProfile(d domain.PayrollProfile) models.PayrollProfile {
	return models.PayrollProfile{
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		FilingStatus: string(d.FilingStatus),
		Allowances:   d.Allowances,
		PayFrequency: string(d.PayFrequency),
		PayRate:      d.PayRate,
		YTDGross:     d.YTDGross,
		YTDFICAWages: d.YTDFICAWages,
		SUTARate:     d.SUTARate,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollProfile converts a model PayrollProfile to its domain form.
func ToDomainPayrollProfile(m models.PayrollProfile) domain.PayrollProfile {
	return domain.PayrollProfile{
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		FilingStatus: domain.FilingStatus(m.FilingStatus),
		Allowances:   m.Allowances,
		PayFrequency: domain.PayFrequency(m.PayFrequency),
		PayRate:      m.PayRate,
		YTDGross:     m.YTDGross,
		YTDFICAWages: m.YTDFICAWages,
		SUTARate:     m.SUTARate,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
