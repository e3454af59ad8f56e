package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/dto"
	"github.com/agrisuite/genfin_backend/internal/middleware"
	"github.com/agrisuite/genfin_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Journal validation errors.
var (
	ErrJournalMinAccounts = fmt.Errorf("%w: journal must involve at least two different accounts", apperrors.ErrValidation)
	ErrAccountInactive    = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrNoPeriodForDate    = fmt.Errorf("%w: no fiscal period covers the journal date", apperrors.ErrValidation)
)

// journalService provides business logic for journal entries. Posting is the
// only path that mutates account balances.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	partyRepo   portsrepo.PartyReader
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
	partyRepo portsrepo.PartyReader,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
		partyRepo:   partyRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal validates and persists a new draft journal. Drafts do not
// touch account balances; posting does.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountSet := make(map[string]bool)
	for _, txn := range req.Transactions {
		accountSet[txn.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrJournalMinAccounts
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	transactions := make([]domain.Transaction, len(req.Transactions))
	for i, txnReq := range req.Transactions {
		if txnReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: transaction amount must be positive for account %s", apperrors.ErrValidation, txnReq.AccountID)
		}
		if txnReq.PartyID == "" && (txnReq.DocumentRef != "" || txnReq.DocumentDate != nil) {
			return nil, fmt.Errorf("%w: document reference requires a party on the line", apperrors.ErrValidation)
		}

		transactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       txnReq.AccountID,
			Amount:          txnReq.Amount,
			TransactionType: txnReq.TransactionType,
			Memo:            txnReq.Memo,
			PartyID:         txnReq.PartyID,
			DocumentRef:     txnReq.DocumentRef,
			DocumentDate:    txnReq.DocumentDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := accounting.ValidateJournalBalance(transactions); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.validateAccounts(ctx, transactions); err != nil {
		return nil, err
	}
	if err := s.validateParties(ctx, transactions); err != nil {
		return nil, err
	}
	if err := s.requireOpenPeriod(ctx, req.JournalDate); err != nil {
		return nil, err
	}

	journal := domain.Journal{
		JournalID:   journalID,
		JournalDate: req.JournalDate,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, transactions); err != nil {
		logger.Error("Failed to save draft journal", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Draft journal created", slog.String("journal_id", journalID), slog.Int("lines", len(transactions)))
	journal.Transactions = transactions
	return &journal, nil
}

// PostJournal commits a draft journal as ledger history. Inside one
// transaction it share-locks the fiscal period, locks the touched accounts in
// sorted order, applies the signed balance deltas, and stamps per-line
// running balances. Everything or nothing.
func (s *journalService) PostJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.journalRepo.Rollback(ctx, tx)
	}()

	journal, err := s.journalRepo.FindJournalByIDForUpdate(ctx, tx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s has status %s, only drafts can be posted", apperrors.ErrStateConflict, journalID, journal.Status)
	}

	period, err := s.periodRepo.FindPeriodForDateForShare(ctx, tx, journal.JournalDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoPeriodForDate
		}
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrStateConflict, period.Name)
	}

	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	// A stored draft that no longer balances means a write-path bug, not
	// caller input.
	if err := accounting.ValidateJournalBalance(transactions); err != nil {
		logger.Error("Stored draft journal fails balance validation", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: journal %s: %s", apperrors.ErrConsistency, journalID, err.Error())
	}

	now := time.Now().UTC()
	runningBalances, balanceChanges, err := applyJournalToAccounts(ctx, tx, s.accountRepo, transactions, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.MarkJournalPostedInTx(ctx, tx, journalID, now, runningBalances, userID); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Journal posted",
		slog.String("journal_id", journalID),
		slog.Int("accounts_touched", len(balanceChanges)),
	)

	journal.Status = domain.Posted
	journal.PostedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID
	for i := range transactions {
		transactions[i].RunningBalance = runningBalances[transactions[i].TransactionID]
	}
	journal.Transactions = transactions
	return journal, nil
}

// VoidJournal reverses a posted journal by generating and posting a
// mirror-image journal, then linking the two. The original keeps its lines
// and becomes REVERSED; its effect and the reversal's cancel in the ledger.
func (s *journalService) VoidJournal(ctx context.Context, journalID string, req dto.VoidJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.journalRepo.Rollback(ctx, tx)
	}()

	original, err := s.journalRepo.FindJournalByIDForUpdate(ctx, tx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s has status %s, only posted journals can be voided", apperrors.ErrStateConflict, journalID, original.Status)
	}
	if original.ReversingJournalID != nil {
		return nil, fmt.Errorf("%w: journal %s is already reversed by %s", apperrors.ErrStateConflict, journalID, *original.ReversingJournalID)
	}

	// The reversal posts on the original date unless the caller supplies an
	// effective date, which is how a journal in a closed period gets voided.
	effectiveDate := original.JournalDate
	if req.EffectiveDate != nil {
		effectiveDate = *req.EffectiveDate
	}

	period, err := s.periodRepo.FindPeriodForDateForShare(ctx, tx, effectiveDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoPeriodForDate
		}
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: fiscal period %s is closed; supply an effective date in an open period", apperrors.ErrStateConflict, period.Name)
	}

	originalTxns, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()
	description := fmt.Sprintf("Reversal of %s", original.Description)
	if req.Reason != "" {
		description = fmt.Sprintf("Reversal of %s: %s", original.Description, req.Reason)
	}

	mirrored := make([]domain.Transaction, len(originalTxns))
	for i, txn := range originalTxns {
		mirrored[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       reversingID,
			AccountID:       txn.AccountID,
			Amount:          txn.Amount,
			TransactionType: txn.TransactionType.Opposite(),
			Memo:            txn.Memo,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	reversing := domain.Journal{
		JournalID:         reversingID,
		JournalDate:       effectiveDate,
		Description:       description,
		Reference:         original.Reference,
		Status:            domain.Draft,
		OriginalJournalID: &journalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, reversing, mirrored); err != nil {
		return nil, err
	}

	runningBalances, _, err := applyJournalToAccounts(ctx, tx, s.accountRepo, mirrored, userID, now)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.MarkJournalPostedInTx(ctx, tx, reversingID, now, runningBalances, userID); err != nil {
		return nil, err
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinksInTx(ctx, tx, journalID, domain.Reversed, &reversingID, nil, userID, now); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Journal voided",
		slog.String("journal_id", journalID),
		slog.String("reversing_journal_id", reversingID),
	)

	reversing.Status = domain.Posted
	reversing.PostedAt = &now
	for i := range mirrored {
		mirrored[i].RunningBalance = runningBalances[mirrored[i].TransactionID]
	}
	reversing.Transactions = mirrored
	return &reversing, nil
}

// GetJournalByID retrieves a journal with its transaction lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions for journal %s: %w", journalID, err)
	}
	journal.Transactions = transactions

	return journal, nil
}

// ListJournals retrieves a page of journal headers, without lines.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	var statusFilter *domain.JournalStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.JournalStatus(*params.Status)
		switch st {
		case domain.Draft, domain.Posted, domain.Reversed:
			statusFilter = &st
		default:
			return nil, fmt.Errorf("%w: unknown journal status filter '%s'", apperrors.ErrValidation, *params.Status)
		}
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, statusFilter, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, len(journals)),
		NextToken: nextToken,
	}
	for i := range journals {
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	return resp, nil
}

// ListTransactionsByAccount retrieves an account's transaction history.
func (s *journalService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	transactions, nextToken, err := s.journalRepo.ListTransactionsByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// applyJournalToAccounts locks the touched accounts in sorted order, verifies
// they are active, applies the signed balance deltas, and returns per-line
// running balances keyed by transaction ID. The period close posts its
// closing journal through this same path.
func applyJournalToAccounts(ctx context.Context, tx pgx.Tx, accountRepo portsrepo.AccountTransactionSupport, transactions []domain.Transaction, userID string, now time.Time) (map[string]decimal.Decimal, map[string]decimal.Decimal, error) {
	accountIDs := make([]string, 0, len(transactions))
	seen := make(map[string]bool, len(transactions))
	for _, txn := range transactions {
		if !seen[txn.AccountID] {
			seen[txn.AccountID] = true
			accountIDs = append(accountIDs, txn.AccountID)
		}
	}
	sort.Strings(accountIDs)

	accounts, err := accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range accountIDs {
		if !accounts[id].IsActive {
			return nil, nil, fmt.Errorf("%w: account %s", ErrAccountInactive, id)
		}
	}

	runningBalances := make(map[string]decimal.Decimal, len(transactions))
	balanceChanges := make(map[string]decimal.Decimal, len(accountIDs))
	current := make(map[string]decimal.Decimal, len(accountIDs))
	for _, id := range accountIDs {
		current[id] = accounts[id].Balance
	}

	for _, txn := range transactions {
		signed, err := accounting.CalculateSignedAmount(txn, accounts[txn.AccountID].AccountType)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrConsistency, err.Error())
		}
		current[txn.AccountID] = current[txn.AccountID].Add(signed)
		runningBalances[txn.TransactionID] = current[txn.AccountID]
		balanceChanges[txn.AccountID] = balanceChanges[txn.AccountID].Add(signed)
	}

	if err := accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, nil, err
	}

	return runningBalances, balanceChanges, nil
}

// validateAccounts checks that every referenced account exists and is active.
func (s *journalService) validateAccounts(ctx context.Context, transactions []domain.Transaction) error {
	accountIDs := make([]string, 0, len(transactions))
	seen := make(map[string]bool, len(transactions))
	for _, txn := range transactions {
		if !seen[txn.AccountID] {
			seen[txn.AccountID] = true
			accountIDs = append(accountIDs, txn.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for journal: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s", ErrAccountInactive, id)
		}
	}
	return nil
}

// validateParties checks that every party-tagged line references a real,
// active party.
func (s *journalService) validateParties(ctx context.Context, transactions []domain.Transaction) error {
	checked := make(map[string]bool)
	for _, txn := range transactions {
		if txn.PartyID == "" || checked[txn.PartyID] {
			continue
		}
		party, err := s.partyRepo.FindPartyByID(ctx, txn.PartyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: party %s does not exist", apperrors.ErrValidation, txn.PartyID)
			}
			return err
		}
		if !party.IsActive {
			return fmt.Errorf("%w: party %s is inactive", apperrors.ErrValidation, txn.PartyID)
		}
		checked[txn.PartyID] = true
	}
	return nil
}

// requireOpenPeriod rejects a journal date outside any period or inside a
// closed one.
func (s *journalService) requireOpenPeriod(ctx context.Context, date time.Time) error {
	period, err := s.periodRepo.FindPeriodForDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrNoPeriodForDate
		}
		return err
	}
	if period.Status != domain.PeriodOpen {
		return fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrStateConflict, period.Name)
	}
	return nil
}
