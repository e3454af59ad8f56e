package services

import (
	"context"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/dto"
)

// BankAccountSvc defines operations for managing bank accounts
type BankAccountSvc interface {
	// CreateBankAccount registers a bank account after validating the routing
	// number checksum.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// GetBankAccountByID retrieves a specific bank account.
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves registered bank accounts.
	ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error)
}

// CheckSvc defines operations for issuing and voiding checks
type CheckSvc interface {
	// IssueCheck assigns the next check number, renders the MICR line, and
	// persists the check.
	IssueCheck(ctx context.Context, bankAccountID string, req dto.IssueCheckRequest, userID string) (*domain.Check, error)

	// VoidCheck flags a check as voided; the number is never reissued.
	VoidCheck(ctx context.Context, checkID string, userID string) error

	// ListChecks retrieves checks for a bank account, newest first.
	ListChecks(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.Check, error)
}

// ACHSvc defines operations for generating NACHA batch files
type ACHSvc interface {
	// GenerateACHBatch validates every entry, renders the NACHA file, and
	// persists the batch with the file contents verbatim. Batches are
	// immutable once generated.
	GenerateACHBatch(ctx context.Context, bankAccountID string, req dto.GenerateACHBatchRequest, userID string) (*domain.ACHBatch, error)

	// GetACHBatchByID retrieves a batch header with its entries.
	GetACHBatchByID(ctx context.Context, batchID string) (*domain.ACHBatch, error)

	// GetACHFile returns the stored 94-character record file for a batch.
	GetACHFile(ctx context.Context, batchID string) (string, error)

	// ListACHBatches retrieves batch headers for a bank account, newest first.
	ListACHBatches(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.ACHBatch, error)
}

// BankingSvcFacade combines all banking-related service interfaces
type BankingSvcFacade interface {
	BankAccountSvc
	CheckSvc
	ACHSvc
}
