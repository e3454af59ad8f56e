package domain

import "time"

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple
// transaction lines. Drafts have no effect on account balances; posting is
// the operation that commits the journal as ledger history.
type Journal struct {
	JournalID   string        `json:"journalID"` // Primary key (UUID)
	JournalDate time.Time     `json:"journalDate"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"` // External document reference
	Status      JournalStatus `json:"status"`
	PostedAt    *time.Time    `json:"postedAt,omitempty"`
	// Reversal linkage. A voided journal keeps its lines; the reversing
	// journal carries the same accounts with sides swapped.
	OriginalJournalID  *string `json:"originalJournalID,omitempty"`
	ReversingJournalID *string `json:"reversingJournalID,omitempty"`
	AuditFields
	Transactions []Transaction `json:"transactions,omitempty"`
}
