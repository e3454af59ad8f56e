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
	"github.com/agrisuite/genfin_backend/internal/utils/banking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Banking errors.
var (
	ErrNotCashAccount   = fmt.Errorf("%w: linked GL account must be an active cash account", apperrors.ErrValidation)
	ErrCheckVoided      = fmt.Errorf("%w: check is already voided", apperrors.ErrStateConflict)
	ErrACHNotConfigured = fmt.Errorf("%w: ACH originator identity is not configured", apperrors.ErrValidation)
)

// bankingService provides bank accounts, check issuance with MICR rendering,
// and NACHA batch generation. The rendered file is persisted verbatim with
// the batch so the audit trail records exactly what was transmitted.
type bankingService struct {
	bankRepo    portsrepo.BankRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	achParams   banking.FileParams
}

// NewBankingService creates a new banking service. achParams carries the
// originator identity from configuration; its CreatedAt is stamped per file.
func NewBankingService(
	bankRepo portsrepo.BankRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	achParams banking.FileParams,
) portssvc.BankingSvcFacade {
	return &bankingService{
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
		achParams:   achParams,
	}
}

var _ portssvc.BankingSvcFacade = (*bankingService)(nil)

// CreateBankAccount registers a bank account. The routing number must pass
// the ABA checksum and the linked GL account must be an active cash account.
func (s *bankingService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := banking.ValidateRoutingNumber(req.RoutingNumber); err != nil {
		return nil, err
	}

	glAccount, err := s.accountRepo.FindAccountByID(ctx, req.GLAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s does not exist", ErrNotCashAccount, req.GLAccountID)
		}
		return nil, err
	}
	if glAccount.Classification != domain.ClassCash || !glAccount.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrNotCashAccount, req.GLAccountID)
	}

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID:   uuid.NewString(),
		Name:            req.Name,
		RoutingNumber:   req.RoutingNumber,
		AccountNumber:   req.AccountNumber,
		GLAccountID:     req.GLAccountID,
		NextCheckNumber: req.NextCheckNumber,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

// GetBankAccountByID retrieves a specific bank account.
func (s *bankingService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
}

// ListBankAccounts retrieves registered bank accounts.
func (s *bankingService) ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error) {
	return s.bankRepo.ListBankAccounts(ctx, limit, offset)
}

// IssueCheck assigns the next check number under the account row lock,
// renders the MICR line, and persists the check. Numbers are monotonic and
// never reused, voids included.
func (s *bankingService) IssueCheck(ctx context.Context, bankAccountID string, req dto.IssueCheckRequest, userID string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: check amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.bankRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.bankRepo.Rollback(ctx, tx)
	}()

	account, err := s.bankRepo.FindBankAccountByIDForUpdate(ctx, tx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: bank account %s is inactive", apperrors.ErrStateConflict, bankAccountID)
	}

	checkNumber := account.NextCheckNumber
	micrLine, err := banking.FormatMICRLine(account.RoutingNumber, account.AccountNumber, checkNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	check := domain.Check{
		CheckID:       uuid.NewString(),
		BankAccountID: bankAccountID,
		CheckNumber:   checkNumber,
		PayeeName:     req.PayeeName,
		Amount:        req.Amount,
		Date:          req.Date,
		MICRLine:      micrLine,
		Voided:        false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankRepo.SaveCheckInTx(ctx, tx, check); err != nil {
		return nil, err
	}
	if err := s.bankRepo.AdvanceCheckNumberInTx(ctx, tx, bankAccountID, checkNumber+1, userID, now); err != nil {
		return nil, err
	}
	if err := s.bankRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Check issued",
		slog.String("check_id", check.CheckID),
		slog.String("bank_account_id", bankAccountID),
		slog.Int64("check_number", checkNumber),
	)
	return &check, nil
}

// VoidCheck flags a check as voided. The row is kept and the number is never
// reissued.
func (s *bankingService) VoidCheck(ctx context.Context, checkID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	check, err := s.bankRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return err
	}
	if check.Voided {
		return fmt.Errorf("%w: check %s", ErrCheckVoided, checkID)
	}

	if err := s.bankRepo.MarkCheckVoided(ctx, checkID, userID, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("Check voided", slog.String("check_id", checkID), slog.Int64("check_number", check.CheckNumber))
	return nil
}

// ListChecks retrieves checks for a bank account, newest first.
func (s *bankingService) ListChecks(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.Check, error) {
	if _, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, err
	}
	return s.bankRepo.ListChecksByBankAccount(ctx, bankAccountID, limit, offset)
}

// GenerateACHBatch validates every entry, assigns trace numbers from the
// ODFI routing prefix, renders the NACHA file, and persists the batch with
// the file contents verbatim. Batches are immutable once generated.
func (s *bankingService) GenerateACHBatch(ctx context.Context, bankAccountID string, req dto.GenerateACHBatchRequest, userID string) (*domain.ACHBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.achParams.ImmediateDestination == "" || s.achParams.CompanyID == "" || s.achParams.ODFIRouting == "" {
		return nil, ErrACHNotConfigured
	}

	if _, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, err
	}

	entries := make([]domain.ACHEntry, 0, len(req.Entries))
	totalCredit := decimal.Zero
	totalDebit := decimal.Zero
	for i, e := range req.Entries {
		if err := banking.ValidateRoutingNumber(e.RoutingNumber); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if !e.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: entry %d amount must be positive", apperrors.ErrValidation, i+1)
		}

		// Trace number: ODFI routing prefix plus a sequential suffix.
		trace := fmt.Sprintf("%s%07d", s.achParams.ODFIRouting[:8], i+1)

		entries = append(entries, domain.ACHEntry{
			EntryID:         uuid.NewString(),
			TransactionCode: e.TransactionCode,
			RoutingNumber:   e.RoutingNumber,
			AccountNumber:   e.AccountNumber,
			Amount:          e.Amount,
			ReceiverID:      e.ReceiverID,
			ReceiverName:    e.ReceiverName,
			TraceNumber:     trace,
		})
		if e.TransactionCode == domain.ACHCheckingDebit {
			totalDebit = totalDebit.Add(e.Amount)
		} else {
			totalCredit = totalCredit.Add(e.Amount)
		}
	}

	now := time.Now().UTC()
	batch := domain.ACHBatch{
		BatchID:          uuid.NewString(),
		BankAccountID:    bankAccountID,
		SECCode:          req.SECCode,
		CompanyEntryDesc: req.CompanyEntryDesc,
		EffectiveDate:    req.EffectiveDate,
		Entries:          entries,
		EntryCount:       len(entries),
		TotalCredit:      totalCredit,
		TotalDebit:       totalDebit,
		GeneratedAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	params := s.achParams
	params.CreatedAt = now
	fileContents, err := banking.GenerateFile(params, []domain.ACHBatch{batch})
	if err != nil {
		return nil, err
	}
	batch.FileContents = fileContents

	if err := s.bankRepo.SaveACHBatch(ctx, batch); err != nil {
		logger.Error("Failed to save ACH batch", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	logger.Info("ACH batch generated",
		slog.String("batch_id", batch.BatchID),
		slog.Int("entries", batch.EntryCount),
		slog.String("total_credit", totalCredit.String()),
		slog.String("total_debit", totalDebit.String()),
	)
	return &batch, nil
}

// GetACHBatchByID retrieves a batch header with its entries.
func (s *bankingService) GetACHBatchByID(ctx context.Context, batchID string) (*domain.ACHBatch, error) {
	return s.bankRepo.FindACHBatchByID(ctx, batchID)
}

// GetACHFile returns the stored 94-character record file for a batch.
func (s *bankingService) GetACHFile(ctx context.Context, batchID string) (string, error) {
	batch, err := s.bankRepo.FindACHBatchByID(ctx, batchID)
	if err != nil {
		return "", err
	}
	return batch.FileContents, nil
}

// ListACHBatches retrieves batch headers for a bank account, newest first.
func (s *bankingService) ListACHBatches(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.ACHBatch, error) {
	if _, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, err
	}
	return s.bankRepo.ListACHBatches(ctx, bankAccountID, limit, offset)
}
