package repositories

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalByIDForUpdate retrieves a journal and locks its row for update.
	FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals using token-based
	// pagination, optionally filtered by status. It returns the journals, a
	// token for the next page, and an error.
	ListJournals(ctx context.Context, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// CountDraftJournalsInRange counts DRAFT journals dated within [from, to].
	// Used by the period close to refuse closing over pending drafts.
	CountDraftJournalsInRange(ctx context.Context, tx pgx.Tx, from, to time.Time) (int64, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a draft journal and its transaction lines.
	SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error

	// SaveJournalInTx persists a journal and its lines within an existing
	// transaction. Used for reversing and closing journals that must commit
	// atomically with the state change that produced them.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, transactions []domain.Transaction) error

	// MarkJournalPostedInTx transitions a journal to POSTED and stamps the
	// per-line running balances computed under the account row locks.
	MarkJournalPostedInTx(ctx context.Context, tx pgx.Tx, journalID string, postedAt time.Time, runningBalances map[string]decimal.Decimal, userID string) error

	// UpdateJournalStatusAndLinksInTx updates the status and reversal linkage
	// (original/reversing IDs) of a journal within an existing transaction.
	UpdateJournalStatusAndLinksInTx(ctx context.Context, tx pgx.Tx, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, userID string, now time.Time) error
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionsByJournalID retrieves all transactions associated with a single journal ID.
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error)

	// FindTransactionsByJournalIDs retrieves transactions for multiple journal IDs, grouped by journal ID.
	FindTransactionsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Transaction, error)

	// FindTransactionByID retrieves a single transaction line.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions for
	// a specific account using token-based pagination. It returns the
	// transactions, a token for the next page, and an error.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	TransactionReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
