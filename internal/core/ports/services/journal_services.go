package services

import (
	"context"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal with its transaction lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal validates and persists a new draft journal. Drafts do not
	// touch account balances.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)

	// PostJournal commits a draft journal as ledger history: balances move,
	// running balances are stamped, and the journal becomes immutable.
	PostJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)

	// VoidJournal reverses a posted journal by generating and posting a
	// mirror-image journal, linking the two.
	VoidJournal(ctx context.Context, journalID string, req dto.VoidJournalRequest, userID string) (*domain.Journal, error)
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListTransactionsByAccount retrieves transactions for a specific account.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	TransactionReaderSvc
}
