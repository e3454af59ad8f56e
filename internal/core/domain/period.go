package domain

import "time"

// PeriodStatus indicates whether a fiscal period still accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is a posting window. Closing is forward-only: a closed period
// is never recycled, a new period is created instead. The closing journal
// zeroes the period's revenue/expense delta into retained earnings.
type FiscalPeriod struct {
	PeriodID         string       `json:"periodID"` // Primary key (UUID)
	Name             string       `json:"name"`     // e.g. "FY2025-03"
	StartDate        time.Time    `json:"startDate"`
	EndDate          time.Time    `json:"endDate"`
	Status           PeriodStatus `json:"status"`
	ClosedAt         *time.Time   `json:"closedAt,omitempty"`
	ClosingJournalID *string      `json:"closingJournalID,omitempty"`
	AuditFields
}

// Contains reports whether the given date falls inside the period (inclusive).
func (p FiscalPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
