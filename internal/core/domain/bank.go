package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount holds the payment-side identity of a cash account. The running
// balance is derived from posted lines on the linked GL account; the next
// check number is monotonic and never reused, voids included.
type BankAccount struct {
	BankAccountID   string `json:"bankAccountID"` // Primary key (UUID)
	Name            string `json:"name"`
	RoutingNumber   string `json:"routingNumber"` // 9 digits, ABA checksum validated
	AccountNumber   string `json:"accountNumber"`
	GLAccountID     string `json:"glAccountID"` // Cash account in the chart
	NextCheckNumber int64  `json:"nextCheckNumber"`
	IsActive        bool   `json:"isActive"`
	AuditFields
}

// Check is one issued check with its rendered MICR line.
type Check struct {
	CheckID       string          `json:"checkID"` // Primary key (UUID)
	BankAccountID string          `json:"bankAccountID"`
	CheckNumber   int64           `json:"checkNumber"`
	PayeeName     string          `json:"payeeName"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	MICRLine      string          `json:"micrLine"`
	Voided        bool            `json:"voided"`
	AuditFields
}

// SECCode is the NACHA standard entry class of a batch.
type SECCode string

const (
	SECPayroll SECCode = "PPD" // consumer credits (payroll)
	SECVendor  SECCode = "CCD" // corporate credits (vendor payments)
)

// ACHTransactionCode identifies the entry detail transaction type.
// 22 = checking credit, 27 = checking debit.
type ACHTransactionCode string

const (
	ACHCheckingCredit ACHTransactionCode = "22"
	ACHCheckingDebit  ACHTransactionCode = "27"
)

// ACHEntry is one payee payment inside a batch.
type ACHEntry struct {
	EntryID         string             `json:"entryID"` // Primary key (UUID)
	TransactionCode ACHTransactionCode `json:"transactionCode"`
	RoutingNumber   string             `json:"routingNumber"`
	AccountNumber   string             `json:"accountNumber"`
	Amount          decimal.Decimal    `json:"amount"`
	ReceiverID      string             `json:"receiverID"`
	ReceiverName    string             `json:"receiverName"`
	TraceNumber     string             `json:"traceNumber"`
}

// ACHBatch is a generated NACHA batch. Batches are immutable once generated:
// regenerating requires a new batch id so the audit trail records exactly
// what was transmitted to the bank.
type ACHBatch struct {
	BatchID          string          `json:"batchID"` // Primary key (UUID)
	BankAccountID    string          `json:"bankAccountID"`
	SECCode          SECCode         `json:"secCode"`
	CompanyEntryDesc string          `json:"companyEntryDescription"` // e.g. "PAYROLL"
	EffectiveDate    time.Time       `json:"effectiveDate"`
	Entries          []ACHEntry      `json:"entries"`
	EntryCount       int             `json:"entryCount"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	FileContents     string          `json:"-"` // 94-char records, persisted verbatim
	GeneratedAt      *time.Time      `json:"generatedAt,omitempty"`
	AuditFields
}
