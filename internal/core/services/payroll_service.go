package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/dto"
	"github.com/agrisuite/genfin_backend/internal/middleware"
	"github.com/agrisuite/genfin_backend/internal/utils/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payroll errors.
var (
	ErrEmployeeInactive = fmt.Errorf("%w: employee profile is inactive", apperrors.ErrStateConflict)
)

// payrollService provides the employee tax profiles and the withholding
// calculator. Pay runs land as draft journals so a bookkeeper reviews them
// before they touch balances.
type payrollService struct {
	payrollRepo portsrepo.PayrollRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	taxCfg      payroll.Config
}

// NewPayrollService creates a new payroll service.
func NewPayrollService(
	payrollRepo portsrepo.PayrollRepositoryWithTx,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	taxCfg payroll.Config,
) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo: payrollRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		taxCfg:      taxCfg,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// CreateProfile registers a new employee tax profile.
func (s *payrollService) CreateProfile(ctx context.Context, req dto.CreatePayrollProfileRequest, userID string) (*domain.PayrollProfile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PayRate.IsNegative() {
		return nil, fmt.Errorf("%w: pay rate cannot be negative", apperrors.ErrValidation)
	}
	if req.YTDGross.IsNegative() || req.YTDFICAWages.IsNegative() {
		return nil, fmt.Errorf("%w: year-to-date figures cannot be negative", apperrors.ErrValidation)
	}
	if req.SUTARate.IsNegative() {
		return nil, fmt.Errorf("%w: SUTA rate cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	profile := domain.PayrollProfile{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		FilingStatus: req.FilingStatus,
		Allowances:   req.Allowances,
		PayFrequency: req.PayFrequency,
		PayRate:      req.PayRate,
		YTDGross:     req.YTDGross,
		YTDFICAWages: req.YTDFICAWages,
		SUTARate:     req.SUTARate,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.payrollRepo.SaveProfile(ctx, profile); err != nil {
		logger.Error("Failed to save payroll profile", slog.String("error", err.Error()), slog.String("employee_id", req.EmployeeID))
		return nil, err
	}

	logger.Info("Payroll profile created", slog.String("employee_id", profile.EmployeeID))
	return &profile, nil
}

// GetProfile retrieves an employee's tax profile.
func (s *payrollService) GetProfile(ctx context.Context, employeeID string) (*domain.PayrollProfile, error) {
	return s.payrollRepo.FindProfileByEmployeeID(ctx, employeeID)
}

// ListProfiles retrieves a paginated list of profiles.
func (s *payrollService) ListProfiles(ctx context.Context, limit int, offset int) ([]domain.PayrollProfile, error) {
	return s.payrollRepo.ListProfiles(ctx, limit, offset)
}

// UpdateProfile updates a profile's details. YTD figures are never edited
// here; only pay runs advance them.
func (s *payrollService) UpdateProfile(ctx context.Context, employeeID string, req dto.UpdatePayrollProfileRequest, userID string) (*domain.PayrollProfile, error) {
	profile, err := s.payrollRepo.FindProfileByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.EmployeeName != nil {
		profile.EmployeeName = *req.EmployeeName
	}
	if req.FilingStatus != nil {
		switch *req.FilingStatus {
		case domain.FilingSingle, domain.FilingMarried, domain.FilingHeadOfHousehold:
			profile.FilingStatus = *req.FilingStatus
		default:
			return nil, fmt.Errorf("%w: unknown filing status '%s'", apperrors.ErrValidation, *req.FilingStatus)
		}
	}
	if req.Allowances != nil {
		if *req.Allowances < 0 {
			return nil, fmt.Errorf("%w: allowances cannot be negative", apperrors.ErrValidation)
		}
		profile.Allowances = *req.Allowances
	}
	if req.PayFrequency != nil {
		switch *req.PayFrequency {
		case domain.PayWeekly, domain.PayBiweekly, domain.PayMonthly:
			profile.PayFrequency = *req.PayFrequency
		default:
			return nil, fmt.Errorf("%w: unknown pay frequency '%s'", apperrors.ErrValidation, *req.PayFrequency)
		}
	}
	if req.PayRate != nil {
		if req.PayRate.IsNegative() {
			return nil, fmt.Errorf("%w: pay rate cannot be negative", apperrors.ErrValidation)
		}
		profile.PayRate = *req.PayRate
	}
	if req.SUTARate != nil {
		if req.SUTARate.IsNegative() {
			return nil, fmt.Errorf("%w: SUTA rate cannot be negative", apperrors.ErrValidation)
		}
		profile.SUTARate = *req.SUTARate
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}
	profile.LastUpdatedAt = time.Now().UTC()
	profile.LastUpdatedBy = userID

	if err := s.payrollRepo.UpdateProfile(ctx, *profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// CalculateWithholding computes the full tax breakdown for one paycheck
// without recording anything. YTD figures come from the stored profile.
func (s *payrollService) CalculateWithholding(ctx context.Context, req dto.CalculateWithholdingRequest) (*domain.TaxWithholding, error) {
	profile, err := s.payrollRepo.FindProfileByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	result, err := payroll.Calculate(req.GrossPay, *profile, s.taxCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return &result, nil
}

// RecordPayRun calculates withholding for every employee in the run, advances
// their YTD figures under row locks, and records one draft journal for the
// whole run: wages and employer taxes debited, withholding liabilities and net
// cash credited. The journal stays a draft until posted through the normal
// journal flow.
func (s *payrollService) RecordPayRun(ctx context.Context, req dto.RecordPayRunRequest, userID string) (*dto.RecordPayRunResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountIDs := []string{
		req.WageExpenseAccountID,
		req.TaxLiabilityAccountID,
		req.CashAccountID,
		req.EmployerTaxExpenseAccID,
	}
	for _, accountID := range accountIDs {
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, accountID)
			}
			return nil, err
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
		}
	}

	tx, err := s.payrollRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.payrollRepo.Rollback(ctx, tx)
	}()

	now := time.Now().UTC()
	totalGross := decimal.Zero
	totalWithheld := decimal.Zero
	totalEmployerTax := decimal.Zero
	totalNet := decimal.Zero
	results := make([]dto.PayRunLineResult, 0, len(req.Lines))

	for _, line := range req.Lines {
		profile, err := s.payrollRepo.FindProfileByEmployeeIDForUpdate(ctx, tx, line.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !profile.IsActive {
			return nil, fmt.Errorf("%w: employee %s", ErrEmployeeInactive, line.EmployeeID)
		}

		withholding, err := payroll.Calculate(line.GrossPay, *profile, s.taxCfg)
		if err != nil {
			return nil, fmt.Errorf("%w: employee %s: %s", apperrors.ErrValidation, line.EmployeeID, err.Error())
		}

		if err := s.payrollRepo.AdvanceYTDInTx(ctx, tx, line.EmployeeID, line.GrossPay, line.GrossPay, userID, now); err != nil {
			return nil, err
		}

		totalGross = totalGross.Add(withholding.GrossPay)
		totalWithheld = totalWithheld.Add(withholding.FederalWithholding).
			Add(withholding.SocialSecurity).
			Add(withholding.Medicare)
		totalEmployerTax = totalEmployerTax.Add(withholding.FUTA).Add(withholding.SUTA)
		totalNet = totalNet.Add(withholding.NetPay)

		results = append(results, dto.PayRunLineResult{
			EmployeeID:  line.EmployeeID,
			Withholding: dto.ToWithholdingResponse(withholding),
		})
	}

	journalID := uuid.NewString()
	lines := buildPayRunLines(journalID, req, totalGross, totalWithheld, totalEmployerTax, totalNet, now, userID)

	journal := domain.Journal{
		JournalID:   journalID,
		JournalDate: req.PayDate,
		Description: fmt.Sprintf("Pay run %s", req.PayDate.Format("2006-01-02")),
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, lines); err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Pay run recorded",
		slog.String("journal_id", journalID),
		slog.Int("employees", len(req.Lines)),
		slog.String("total_net", totalNet.String()),
	)

	return &dto.RecordPayRunResponse{
		JournalID: journalID,
		Lines:     results,
		TotalNet:  totalNet,
	}, nil
}

// buildPayRunLines assembles the pay-run journal. Debits are gross wages plus
// employer taxes; credits are the tax liabilities (employee withholding plus
// employer taxes) and the net cash out, so the journal balances by
// construction.
func buildPayRunLines(
	journalID string,
	req dto.RecordPayRunRequest,
	totalGross, totalWithheld, totalEmployerTax, totalNet decimal.Decimal,
	now time.Time,
	userID string,
) []domain.Transaction {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	line := func(accountID string, amount decimal.Decimal, side domain.TransactionType, memo string) domain.Transaction {
		return domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       accountID,
			Amount:          amount,
			TransactionType: side,
			Memo:            memo,
			AuditFields:     audit,
		}
	}

	lines := []domain.Transaction{
		line(req.WageExpenseAccountID, totalGross, domain.Debit, "Gross wages"),
	}
	if !totalEmployerTax.IsZero() {
		lines = append(lines, line(req.EmployerTaxExpenseAccID, totalEmployerTax, domain.Debit, "Employer payroll taxes"))
	}
	taxLiability := totalWithheld.Add(totalEmployerTax)
	if !taxLiability.IsZero() {
		lines = append(lines, line(req.TaxLiabilityAccountID, taxLiability, domain.Credit, "Payroll tax liabilities"))
	}
	lines = append(lines, line(req.CashAccountID, totalNet, domain.Credit, "Net pay"))

	return lines
}
