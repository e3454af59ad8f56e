package dto

import (
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePayrollProfileRequest defines the data needed to register an employee
// tax profile.
type CreatePayrollProfileRequest struct {
	EmployeeID   string              `json:"employeeID" binding:"required"`
	EmployeeName string              `json:"employeeName" binding:"required"`
	FilingStatus domain.FilingStatus `json:"filingStatus" binding:"required,oneof=SINGLE MARRIED HEAD_OF_HOUSEHOLD"`
	Allowances   int                 `json:"allowances" binding:"min=0"`
	PayFrequency domain.PayFrequency `json:"payFrequency" binding:"required,oneof=WEEKLY BIWEEKLY MONTHLY"`
	PayRate      decimal.Decimal     `json:"payRate"`
	YTDGross     decimal.Decimal     `json:"ytdGross"`
	YTDFICAWages decimal.Decimal     `json:"ytdFICAWages"`
	SUTARate     decimal.Decimal     `json:"sutaRate"`
}

// UpdatePayrollProfileRequest defines the data allowed for updating a profile.
type UpdatePayrollProfileRequest struct {
	EmployeeName *string              `json:"employeeName"`
	FilingStatus *domain.FilingStatus `json:"filingStatus"`
	Allowances   *int                 `json:"allowances"`
	PayFrequency *domain.PayFrequency `json:"payFrequency"`
	PayRate      *decimal.Decimal     `json:"payRate"`
	SUTARate     *decimal.Decimal     `json:"sutaRate"`
	IsActive     *bool                `json:"isActive"`
}

// PayrollProfileResponse defines the data returned for a payroll profile.
type PayrollProfileResponse struct {
	EmployeeID   string              `json:"employeeID"`
	EmployeeName string              `json:"employeeName"`
	FilingStatus domain.FilingStatus `json:"filingStatus"`
	Allowances   int                 `json:"allowances"`
	PayFrequency domain.PayFrequency `json:"payFrequency"`
	PayRate      decimal.Decimal     `json:"payRate"`
	YTDGross     decimal.Decimal     `json:"ytdGross"`
	YTDFICAWages decimal.Decimal     `json:"ytdFICAWages"`
	SUTARate     decimal.Decimal     `json:"sutaRate"`
	IsActive     bool                `json:"isActive"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToPayrollProfileResponse converts a domain.PayrollProfile to its DTO.
func ToPayrollProfileResponse(p *domain.PayrollProfile) PayrollProfileResponse {
	return PayrollProfileResponse{
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		FilingStatus: p.FilingStatus,
		Allowances:   p.Allowances,
		PayFrequency: p.PayFrequency,
		PayRate:      p.PayRate,
		YTDGross:     p.YTDGross,
		YTDFICAWages: p.YTDFICAWages,
		SUTARate:     p.SUTARate,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ToListPayrollProfileResponse converts a slice of profiles to DTOs.
func ToListPayrollProfileResponse(profiles []domain.PayrollProfile) []PayrollProfileResponse {
	res := make([]PayrollProfileResponse, len(profiles))
	for i, p := range profiles {
		res[i] = ToPayrollProfileResponse(&p)
	}
	return res
}

// CalculateWithholdingRequest asks for a tax calculation without recording
// anything. YTD figures come from the stored profile.
type CalculateWithholdingRequest struct {
	EmployeeID string          `json:"employeeID" binding:"required"`
	GrossPay   decimal.Decimal `json:"grossPay" binding:"required"`
}

// WithholdingResponse is the full tax breakdown for one paycheck.
type WithholdingResponse struct {
	GrossPay           decimal.Decimal `json:"grossPay"`
	FederalWithholding decimal.Decimal `json:"federalWithholding"`
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	FUTA               decimal.Decimal `json:"futa"`
	SUTA               decimal.Decimal `json:"suta"`
	NetPay             decimal.Decimal `json:"netPay"`
}

// ToWithholdingResponse converts a domain.TaxWithholding to its DTO.
func ToWithholdingResponse(w domain.TaxWithholding) WithholdingResponse {
	return WithholdingResponse{
		GrossPay:           w.GrossPay,
		FederalWithholding: w.FederalWithholding,
		SocialSecurity:     w.SocialSecurity,
		Medicare:           w.Medicare,
		FUTA:               w.FUTA,
		SUTA:               w.SUTA,
		NetPay:             w.NetPay,
	}
}

// PayRunLine is one employee's gross pay in a pay run.
type PayRunLine struct {
	EmployeeID string          `json:"employeeID" binding:"required"`
	GrossPay   decimal.Decimal `json:"grossPay" binding:"required"`
}

// RecordPayRunRequest calculates withholding for each employee, advances YTD
// figures, and records the run as a draft journal against the named accounts.
type RecordPayRunRequest struct {
	PayDate                 time.Time    `json:"payDate" binding:"required"`
	Lines                   []PayRunLine `json:"lines" binding:"required,min=1,dive"`
	WageExpenseAccountID    string       `json:"wageExpenseAccountID" binding:"required"`
	TaxLiabilityAccountID   string       `json:"taxLiabilityAccountID" binding:"required"`
	CashAccountID           string       `json:"cashAccountID" binding:"required"`
	EmployerTaxExpenseAccID string       `json:"employerTaxExpenseAccountID" binding:"required"`
}

// PayRunLineResult pairs an employee with the calculated withholding.
type PayRunLineResult struct {
	EmployeeID  string              `json:"employeeID"`
	Withholding WithholdingResponse `json:"withholding"`
}

// RecordPayRunResponse reports the per-employee results and the draft journal
// created for the run.
type RecordPayRunResponse struct {
	JournalID string             `json:"journalID"`
	Lines     []PayRunLineResult `json:"lines"`
	TotalNet  decimal.Decimal    `json:"totalNet"`
}
