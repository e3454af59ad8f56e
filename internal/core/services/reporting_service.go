package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/middleware"
	"github.com/agrisuite/genfin_backend/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// marginWindowDays is the trailing window the ratio report uses for its
// margin computations.
const marginWindowDays = 365

// reportingService generates financial statements. Every report runs its
// queries inside one repeatable-read snapshot, and cross-checks its own
// arithmetic before returning: a mismatch is a latent posting bug and is
// surfaced as a consistency error, never corrected.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance as of a date. Refused outright when
// the debit and credit grand totals diverge.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.reportingRepo.Rollback(ctx, tx)
	}()

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, tx, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:         asOf,
		Rows:         rows,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, row := range rows {
		report.TotalDebits = report.TotalDebits.Add(row.Debit)
		report.TotalCredits = report.TotalCredits.Add(row.Credit)
	}

	if !report.TotalDebits.Equal(report.TotalCredits) {
		logger.Error("Trial balance totals diverge",
			slog.String("total_debits", report.TotalDebits.String()),
			slog.String("total_credits", report.TotalCredits.String()),
		)
		return nil, fmt.Errorf("%w: trial balance debits %s do not equal credits %s",
			apperrors.ErrConsistency, report.TotalDebits.String(), report.TotalCredits.String())
	}

	return report, nil
}

// ProfitAndLoss generates a P&L for [from, to], optionally with a comparison
// against the preceding window of the same length.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time, withPrior bool) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report end date precedes start date", apperrors.ErrValidation)
	}

	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.reportingRepo.Rollback(ctx, tx)
	}()

	report, err := s.profitAndLossInTx(ctx, tx, from, to)
	if err != nil {
		return nil, err
	}

	if withPrior {
		windowDays := int(to.Sub(from).Hours()/24) + 1
		priorTo := from.AddDate(0, 0, -1)
		priorFrom := priorTo.AddDate(0, 0, -(windowDays - 1))

		prior, err := s.profitAndLossInTx(ctx, tx, priorFrom, priorTo)
		if err != nil {
			return nil, err
		}
		report.PriorPeriod = prior
	}

	return report, nil
}

func (s *reportingService) profitAndLossInTx(ctx context.Context, tx pgx.Tx, from, to time.Time) (*domain.PAndLReport, error) {
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tx, from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{
		From:          from,
		To:            to,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, r := range revenue {
		report.TotalRevenue = report.TotalRevenue.Add(r.NetAmount)
	}
	for _, e := range expenses {
		report.TotalExpenses = report.TotalExpenses.Add(e.NetAmount)
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	return report, nil
}

// BalanceSheet generates a balance sheet as of a date. The accounting
// equation is enforced: Assets must equal Liabilities plus Equity, where
// equity combines the equity accounts with the revenue/expense net not yet
// swept by a period close. A mismatch is refused.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.reportingRepo.Rollback(ctx, tx)
	}()

	report, err := s.balanceSheetInTx(ctx, tx, asOf)
	if err != nil {
		return nil, err
	}

	rhs := report.TotalLiabilities.Add(report.TotalEquity)
	if !report.TotalAssets.Equal(rhs) {
		logger.Error("Balance sheet does not balance",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("liabilities_plus_equity", rhs.String()),
		)
		return nil, fmt.Errorf("%w: assets %s do not equal liabilities plus equity %s",
			apperrors.ErrConsistency, report.TotalAssets.String(), rhs.String())
	}

	return report, nil
}

func (s *reportingService) balanceSheetInTx(ctx context.Context, tx pgx.Tx, asOf time.Time) (*domain.BalanceSheetReport, error) {
	grouped, err := s.reportingRepo.GetBalanceSheetData(ctx, tx, asOf)
	if err != nil {
		return nil, err
	}

	// Closing journals hit the revenue/expense accounts directly, so summing
	// them over all time leaves exactly the earnings not yet closed.
	unclosed, err := s.profitAndLossInTx(ctx, tx, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:                  asOf,
		CurrentAssets:         concatAmounts(grouped[domain.ClassCash], grouped[domain.ClassCurrentAsset]),
		FixedAssets:           grouped[domain.ClassFixedAsset],
		CurrentLiabilities:    grouped[domain.ClassCurrentLiability],
		LongTermLiabilities:   grouped[domain.ClassLongTermLiab],
		Equity:                grouped[domain.ClassEquity],
		CurrentPeriodEarnings: unclosed.NetProfit,
	}

	report.TotalAssets = sumAmounts(report.CurrentAssets).Add(sumAmounts(report.FixedAssets))
	report.TotalLiabilities = sumAmounts(report.CurrentLiabilities).Add(sumAmounts(report.LongTermLiabilities))
	report.TotalEquity = sumAmounts(report.Equity).Add(report.CurrentPeriodEarnings)

	return report, nil
}

// activityFor maps a counter-account classification to its cash-flow bucket.
func activityFor(class domain.AccountClassification) domain.CashFlowActivity {
	switch class {
	case domain.ClassFixedAsset:
		return domain.ActivityInvesting
	case domain.ClassLongTermLiab, domain.ClassEquity:
		return domain.ActivityFinancing
	default:
		return domain.ActivityOperating
	}
}

// CashFlow generates a cash-flow statement for [from, to]. Movements are
// bucketed by the counter-account's classification; beginning balance plus
// net change must equal the ending balance by construction.
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report end date precedes start date", apperrors.ErrValidation)
	}

	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.reportingRepo.Rollback(ctx, tx)
	}()

	beginning, err := s.reportingRepo.GetCashBalance(ctx, tx, from)
	if err != nil {
		return nil, err
	}

	grouped, err := s.reportingRepo.GetCashFlowData(ctx, tx, from, to)
	if err != nil {
		return nil, err
	}

	byActivity := map[domain.CashFlowActivity][]domain.AccountAmount{}
	for class, amounts := range grouped {
		activity := activityFor(class)
		byActivity[activity] = append(byActivity[activity], amounts...)
	}

	report := &domain.CashFlowReport{
		From:             from,
		To:               to,
		BeginningBalance: beginning,
		NetChange:        decimal.Zero,
	}
	for _, activity := range []domain.CashFlowActivity{domain.ActivityOperating, domain.ActivityInvesting, domain.ActivityFinancing} {
		lines := byActivity[activity]
		if len(lines) == 0 {
			continue
		}
		group := domain.CashFlowGroup{
			Activity: activity,
			Lines:    lines,
			Total:    sumAmounts(lines),
		}
		report.Groups = append(report.Groups, group)
		report.NetChange = report.NetChange.Add(group.Total)
	}
	report.EndingBalance = report.BeginningBalance.Add(report.NetChange)

	return report, nil
}

// Ratios computes the standard financial ratios as of a date. Margins use a
// trailing one-year window ending at the date. Every division goes through
// the guarded divide, so a zero denominator yields an undefined ratio
// (serialized as null), never an infinity.
func (s *reportingService) Ratios(ctx context.Context, asOf time.Time) (*domain.RatioReport, error) {
	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.reportingRepo.Rollback(ctx, tx)
	}()

	grouped, err := s.reportingRepo.GetBalanceSheetData(ctx, tx, asOf)
	if err != nil {
		return nil, err
	}

	cash := sumAmounts(grouped[domain.ClassCash])
	currentAssets := cash.Add(sumAmounts(grouped[domain.ClassCurrentAsset]))
	currentLiabilities := sumAmounts(grouped[domain.ClassCurrentLiability])
	totalLiabilities := currentLiabilities.Add(sumAmounts(grouped[domain.ClassLongTermLiab]))

	pnl, err := s.profitAndLossInTx(ctx, tx, asOf.AddDate(0, 0, -(marginWindowDays-1)), asOf)
	if err != nil {
		return nil, err
	}

	// Unclosed earnings belong to equity for leverage purposes, same as the
	// balance sheet.
	unclosed, err := s.profitAndLossInTx(ctx, tx, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	totalEquity := sumAmounts(grouped[domain.ClassEquity]).Add(unclosed.NetProfit)

	cogs := decimal.Zero
	for _, e := range pnl.Expenses {
		if e.Classification == domain.ClassCOGS {
			cogs = cogs.Add(e.NetAmount)
		}
	}

	report := &domain.RatioReport{
		AsOf:           asOf,
		CurrentRatio:   accounting.SafeDivide(currentAssets, currentLiabilities),
		QuickRatio:     accounting.SafeDivide(cash, currentLiabilities),
		WorkingCapital: currentAssets.Sub(currentLiabilities),
		DebtToEquity:   accounting.SafeDivide(totalLiabilities, totalEquity),
		GrossMargin:    accounting.SafeDivide(pnl.TotalRevenue.Sub(cogs), pnl.TotalRevenue),
		NetMargin:      accounting.SafeDivide(pnl.NetProfit, pnl.TotalRevenue),
	}

	return report, nil
}

func sumAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}

func concatAmounts(groups ...[]domain.AccountAmount) []domain.AccountAmount {
	var out []domain.AccountAmount
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
