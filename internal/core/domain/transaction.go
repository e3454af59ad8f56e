package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction line is a Debit or a Credit.
// Representing the side as an enum with a single positive Amount makes a
// "both sides non-zero" line unrepresentable.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Opposite returns the reversing side.
func (t TransactionType) Opposite() TransactionType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// Transaction represents a single line item within a Journal, affecting one account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary key (UUID)
	JournalID       string          `json:"journalID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	TransactionType TransactionType `json:"transactionType"`
	Memo            string          `json:"memo"`
	// Subledger tag: present when the line belongs to a vendor bill or
	// customer invoice. DocumentDate plus the party's payment terms yields
	// the due date used for aging.
	PartyID      string     `json:"partyID,omitempty"`
	DocumentRef  string     `json:"documentRef,omitempty"`
	DocumentDate *time.Time `json:"documentDate,omitempty"`
	// RunningBalance is the account balance after this line, computed at
	// posting time under the account row lock.
	RunningBalance decimal.Decimal `json:"runningBalance"`
	AuditFields
}
