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

// accountService provides business logic for the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account in the chart.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateClassification(req.AccountType, req.Classification); err != nil {
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to verify parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account %s has type %s, child has type %s", apperrors.ErrValidation, parent.AccountID, parent.AccountType, req.AccountType)
		}
		parentID = parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		AccountType:     req.AccountType,
		Classification:  req.Classification,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_number", req.AccountNumber))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// UpdateAccount updates an account's mutable details. Type and classification
// never change; renumbering is likewise not supported.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return account, nil
}

// DeactivateAccount marks an account inactive. Accounts with history are
// never deleted, only retired.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByNumber retrieves an account by its chart-of-accounts number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	var typeFilter *domain.AccountType
	if params.Type != nil && *params.Type != "" {
		t := domain.AccountType(*params.Type)
		switch t {
		case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
			typeFilter = &t
		default:
			return nil, fmt.Errorf("%w: unknown account type filter '%s'", apperrors.ErrValidation, *params.Type)
		}
	}

	return s.accountRepo.ListAccounts(ctx, typeFilter, params.Limit, params.Offset)
}

// validateClassification rejects classification values that contradict the
// account type, e.g. a CASH-classified liability.
func validateClassification(accountType domain.AccountType, class domain.AccountClassification) error {
	valid := map[domain.AccountType][]domain.AccountClassification{
		domain.Asset:     {domain.ClassCash, domain.ClassCurrentAsset, domain.ClassFixedAsset},
		domain.Liability: {domain.ClassCurrentLiability, domain.ClassLongTermLiab},
		domain.Equity:    {domain.ClassEquity},
		domain.Revenue:   {domain.ClassRevenue},
		domain.Expense:   {domain.ClassCOGS, domain.ClassExpense},
	}
	for _, c := range valid[accountType] {
		if c == class {
			return nil
		}
	}
	return fmt.Errorf("%w: classification %s is not valid for account type %s", apperrors.ErrValidation, class, accountType)
}
