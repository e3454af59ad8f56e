package models

import "github.com/shopspring/decimal"

// PayrollProfile is the persistence model for an employee tax profile.
type PayrollProfile struct {
	EmployeeID   string          `db:"employee_id"`
	EmployeeName string          `db:"employee_name"`
	FilingStatus string          `db:"filing_status"`
	Allowances   int             `db:"allowances"`
	PayFrequency string          `db:"pay_frequency"`
	PayRate      decimal.Decimal `db:"pay_rate"`
	YTDGross     decimal.Decimal `db:"ytd_gross"`
	YTDFICAWages decimal.Decimal `db:"ytd_fica_wages"`
	SUTARate     decimal.Decimal `db:"suta_rate"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
