package domain

import "github.com/shopspring/decimal"

// FilingStatus selects the federal withholding bracket table.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "SINGLE"
	FilingMarried         FilingStatus = "MARRIED"
	FilingHeadOfHousehold FilingStatus = "HEAD_OF_HOUSEHOLD"
)

// PayFrequency annualizes per-period gross pay for bracket lookup.
type PayFrequency string

const (
	PayWeekly   PayFrequency = "WEEKLY"
	PayBiweekly PayFrequency = "BIWEEKLY"
	PayMonthly  PayFrequency = "MONTHLY"
)

// PeriodsPerYear returns the number of pay periods in a year.
func (f PayFrequency) PeriodsPerYear() int64 {
	switch f {
	case PayWeekly:
		return 52
	case PayBiweekly:
		return 26
	default:
		return 12
	}
}

// PayrollProfile is the per-employee tax profile. YTD figures are required
// for the Social Security wage-base cap and the Medicare surtax threshold.
type PayrollProfile struct {
	EmployeeID   string          `json:"employeeID"` // Primary key (caller-owned id)
	EmployeeName string          `json:"employeeName"`
	FilingStatus FilingStatus    `json:"filingStatus"`
	Allowances   int             `json:"allowances"`
	PayFrequency PayFrequency    `json:"payFrequency"`
	PayRate      decimal.Decimal `json:"payRate"`
	YTDGross     decimal.Decimal `json:"ytdGross"`
	YTDFICAWages decimal.Decimal `json:"ytdFICAWages"`
	SUTARate     decimal.Decimal `json:"sutaRate"` // employer state rate, overrides config when non-zero
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// TaxWithholding is the result of one payroll tax calculation. All amounts
// are banker's-rounded to cents at the final step only.
type TaxWithholding struct {
	GrossPay           decimal.Decimal `json:"grossPay"`
	FederalWithholding decimal.Decimal `json:"federalWithholding"`
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	FUTA               decimal.Decimal `json:"futa"` // employer-side, not deducted from net
	SUTA               decimal.Decimal `json:"suta"` // employer-side, not deducted from net
	NetPay             decimal.Decimal `json:"netPay"`
}
