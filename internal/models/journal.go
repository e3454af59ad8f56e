package models

import "time"

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal is the persistence model for a journal entry header.
type Journal struct {
	JournalID          string        `db:"journal_id"`
	JournalDate        time.Time     `db:"journal_date"`
	Description        string        `db:"description"`
	Reference          string        `db:"reference"`
	Status             JournalStatus `db:"status"`
	PostedAt           *time.Time    `db:"posted_at"`
	OriginalJournalID  *string       `db:"original_journal_id"`
	ReversingJournalID *string       `db:"reversing_journal_id"`
	AuditFields
}
