package repositories

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a specific bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// FindBankAccountByIDForUpdate retrieves a bank account and locks its row.
	// Check issuance holds this lock while consuming the check-number counter.
	FindBankAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all registered bank accounts.
	ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount updates an existing bank account's details.
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error

	// AdvanceCheckNumberInTx moves the account's next-check-number counter past
	// the consumed number. The counter never moves backwards.
	AdvanceCheckNumberInTx(ctx context.Context, tx pgx.Tx, bankAccountID string, nextCheckNumber int64, userID string, now time.Time) error
}

// CheckReader defines read operations for issued checks
type CheckReader interface {
	// FindCheckByID retrieves a specific check by its unique identifier.
	FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error)

	// ListChecksByBankAccount retrieves checks for a bank account, newest first.
	ListChecksByBankAccount(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.Check, error)
}

// CheckWriter defines write operations for issued checks
type CheckWriter interface {
	// SaveCheckInTx persists a newly issued check within the issuance transaction.
	SaveCheckInTx(ctx context.Context, tx pgx.Tx, check domain.Check) error

	// MarkCheckVoided flags a check as voided. The check row is kept; its
	// number is never reissued.
	MarkCheckVoided(ctx context.Context, checkID string, userID string, now time.Time) error
}

// ACHReader defines read operations for generated ACH batches
type ACHReader interface {
	// FindACHBatchByID retrieves a batch header with its entries.
	FindACHBatchByID(ctx context.Context, batchID string) (*domain.ACHBatch, error)

	// ListACHBatches retrieves batch headers for a bank account, newest first.
	ListACHBatches(ctx context.Context, bankAccountID string, limit int, offset int) ([]domain.ACHBatch, error)
}

// ACHWriter defines write operations for generated ACH batches
type ACHWriter interface {
	// SaveACHBatch persists a generated batch, its entries, and the rendered
	// file contents. Batches are never updated after this write.
	SaveACHBatch(ctx context.Context, batch domain.ACHBatch) error
}

// BankRepositoryFacade combines all banking-related repository interfaces
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	CheckReader
	CheckWriter
	ACHReader
	ACHWriter
}

// BankRepositoryWithTx extends BankRepositoryFacade with transaction capabilities
type BankRepositoryWithTx interface {
	BankRepositoryFacade
	TransactionManager
}
