package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is the persistence model for one journal line.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	JournalID       string          `db:"journal_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
	Memo            string          `db:"memo"`
	PartyID         *string         `db:"party_id"`
	DocumentRef     *string         `db:"document_ref"`
	DocumentDate    *time.Time      `db:"document_date"`
	RunningBalance  decimal.Decimal `db:"running_balance"`
	AuditFields
}
