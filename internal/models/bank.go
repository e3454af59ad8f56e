package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the persistence model for a bank account.
type BankAccount struct {
	BankAccountID   string `db:"bank_account_id"`
	Name            string `db:"name"`
	RoutingNumber   string `db:"routing_number"`
	AccountNumber   string `db:"account_number"`
	GLAccountID     string `db:"gl_account_id"`
	NextCheckNumber int64  `db:"next_check_number"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}

// Check is the persistence model for an issued check.
type Check struct {
	CheckID       string          `db:"check_id"`
	BankAccountID string          `db:"bank_account_id"`
	CheckNumber   int64           `db:"check_number"`
	PayeeName     string          `db:"payee_name"`
	Amount        decimal.Decimal `db:"amount"`
	Date          time.Time       `db:"check_date"`
	MICRLine      string          `db:"micr_line"`
	Voided        bool            `db:"voided"`
	AuditFields
}

// ACHBatch is the persistence model for a generated NACHA batch. The file
// contents are stored verbatim so the audit trail records exactly what was
// transmitted.
type ACHBatch struct {
	BatchID          string          `db:"batch_id"`
	BankAccountID    string          `db:"bank_account_id"`
	SECCode          string          `db:"sec_code"`
	CompanyEntryDesc string          `db:"company_entry_description"`
	EffectiveDate    time.Time       `db:"effective_date"`
	EntryCount       int             `db:"entry_count"`
	TotalCredit      decimal.Decimal `db:"total_credit"`
	TotalDebit       decimal.Decimal `db:"total_debit"`
	FileContents     string          `db:"file_contents"`
	GeneratedAt      *time.Time      `db:"generated_at"`
	AuditFields
}

// ACHEntry is the persistence model for one payment inside a batch.
type ACHEntry struct {
	EntryID         string          `db:"entry_id"`
	BatchID         string          `db:"batch_id"`
	TransactionCode string          `db:"transaction_code"`
	RoutingNumber   string          `db:"routing_number"`
	AccountNumber   string          `db:"account_number"`
	Amount          decimal.Decimal `db:"amount"`
	ReceiverID      string          `db:"receiver_id"`
	ReceiverName    string          `db:"receiver_name"`
	TraceNumber     string          `db:"trace_number"`
}
