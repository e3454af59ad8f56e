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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period lifecycle errors.
var (
	ErrPeriodOverlap   = fmt.Errorf("%w: date range overlaps an existing fiscal period", apperrors.ErrStateConflict)
	ErrDraftsInPeriod  = fmt.Errorf("%w: draft journals are dated inside the period", apperrors.ErrStateConflict)
	ErrNotEquityTarget = fmt.Errorf("%w: retained earnings account must be an active equity account", apperrors.ErrValidation)
)

// periodService provides business logic for fiscal periods, including the
// year-end close.
type periodService struct {
	periodRepo    portsrepo.PeriodRepositoryWithTx
	journalRepo   portsrepo.JournalRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewPeriodService creates a new fiscal period service.
func NewPeriodService(
	periodRepo portsrepo.PeriodRepositoryWithTx,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	reportingRepo portsrepo.ReportingRepository,
) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:    periodRepo,
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod opens a new fiscal period. Ranges may not overlap an existing
// period; closed periods are never recycled, a new one is created instead.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date precedes start date", apperrors.ErrValidation)
	}

	existing, err := s.periodRepo.FindOverlappingPeriod(ctx, req.StartDate, req.EndDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: overlaps period %s", ErrPeriodOverlap, existing.Name)
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save fiscal period", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// GetPeriodByID retrieves a specific fiscal period.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// ListPeriods retrieves fiscal periods, newest first.
func (s *periodService) ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FiscalPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, limit, offset)
}

// ClosePeriod runs the close: under an exclusive period lock it refuses to
// proceed over pending drafts, sums every revenue and expense account's
// period delta, posts one closing journal sweeping the net into the
// designated retained-earnings account, and seals the period. Account
// balances are never reset; only the closing entry carries the net forward.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, req dto.ClosePeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reAccount, err := s.accountRepo.FindAccountByID(ctx, req.RetainedEarningsAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", ErrNotEquityTarget, req.RetainedEarningsAccountID)
		}
		return nil, err
	}
	if reAccount.AccountType != domain.Equity || !reAccount.IsActive {
		return nil, ErrNotEquityTarget
	}

	tx, err := s.periodRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.periodRepo.Rollback(ctx, tx)
	}()

	// Exclusive lock: concurrent posts share-lock the period row, so by the
	// time this returns no posting into the period is in flight.
	period, err := s.periodRepo.FindPeriodByIDForUpdate(ctx, tx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: fiscal period %s is already closed", apperrors.ErrStateConflict, period.Name)
	}

	draftCount, err := s.journalRepo.CountDraftJournalsInRange(ctx, tx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	if draftCount > 0 {
		return nil, fmt.Errorf("%w: %d draft journal(s) must be posted or discarded first", ErrDraftsInPeriod, draftCount)
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	closingJournalID := ""
	lines := buildClosingLines(revenue, expenses, req.RetainedEarningsAccountID, now, userID)
	if len(lines) > 0 {
		closingJournalID = uuid.NewString()
		for i := range lines {
			lines[i].JournalID = closingJournalID
		}

		closing := domain.Journal{
			JournalID:   closingJournalID,
			JournalDate: period.EndDate,
			Description: fmt.Sprintf("Closing entry for %s", period.Name),
			Status:      domain.Draft,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		if err := s.journalRepo.SaveJournalInTx(ctx, tx, closing, lines); err != nil {
			return nil, err
		}

		runningBalances, _, err := applyJournalToAccounts(ctx, tx, s.accountRepo, lines, userID, now)
		if err != nil {
			return nil, err
		}
		if err := s.journalRepo.MarkJournalPostedInTx(ctx, tx, closingJournalID, now, runningBalances, userID); err != nil {
			return nil, err
		}
	}

	if err := s.periodRepo.MarkPeriodClosedInTx(ctx, tx, periodID, closingJournalID, userID, now); err != nil {
		return nil, err
	}

	if err := s.periodRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Fiscal period closed",
		slog.String("period_id", periodID),
		slog.String("closing_journal_id", closingJournalID),
	)

	period.Status = domain.PeriodClosed
	period.ClosedAt = &now
	if closingJournalID != "" {
		period.ClosingJournalID = &closingJournalID
	}
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID
	return period, nil
}

// buildClosingLines produces the closing journal's lines: debit each revenue
// account by its period net, credit each expense account, and put the net
// income on the retained-earnings account. Accounts with a zero period delta
// are skipped. Negative nets (contra balances) swap the side.
func buildClosingLines(revenue, expenses []domain.AccountAmount, retainedEarningsAccountID string, now time.Time, userID string) []domain.Transaction {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	line := func(accountID string, amount decimal.Decimal, side domain.TransactionType, memo string) domain.Transaction {
		if amount.IsNegative() {
			amount = amount.Neg()
			side = side.Opposite()
		}
		return domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       accountID,
			Amount:          amount,
			TransactionType: side,
			Memo:            memo,
			AuditFields:     audit,
		}
	}

	var lines []domain.Transaction
	netIncome := decimal.Zero

	for _, r := range revenue {
		if r.NetAmount.IsZero() {
			continue
		}
		// Revenue nets are credit-positive; a debit of the same amount zeroes
		// the period delta.
		lines = append(lines, line(r.AccountID, r.NetAmount, domain.Debit, "Close revenue"))
		netIncome = netIncome.Add(r.NetAmount)
	}
	for _, e := range expenses {
		if e.NetAmount.IsZero() {
			continue
		}
		lines = append(lines, line(e.AccountID, e.NetAmount, domain.Credit, "Close expense"))
		netIncome = netIncome.Sub(e.NetAmount)
	}

	if len(lines) == 0 {
		return nil
	}

	// Positive net income lands as a credit to equity.
	if !netIncome.IsZero() {
		lines = append(lines, line(retainedEarningsAccountID, netIncome, domain.Credit, "Net income to retained earnings"))
	}

	return lines
}
