package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyKind distinguishes AP vendors from AR customers.
type PartyKind string

const (
	Vendor   PartyKind = "VENDOR"
	Customer PartyKind = "CUSTOMER"
)

// Party is a subledger counterparty. Its balance is never stored: it is
// always recomputed as the signed sum of open posted lines tagged to it.
type Party struct {
	PartyID          string    `json:"partyID"` // Primary key (UUID)
	Name             string    `json:"name"`
	Kind             PartyKind `json:"kind"`
	PaymentTermsDays int       `json:"paymentTermsDays"` // net-N days
	CreditLimit      decimal.Decimal
	DefaultAccountID string `json:"defaultAccountID,omitempty"`
	IsActive         bool   `json:"isActive"`
	AuditFields
}

// OpenItem is one posted subledger line (a bill or invoice) together with its
// remaining unapplied amount. Remaining == Amount - sum of applications.
type OpenItem struct {
	TransactionID string          `json:"transactionID"`
	JournalID     string          `json:"journalID"`
	DocumentRef   string          `json:"documentRef"`
	DocumentDate  time.Time       `json:"documentDate"`
	DueDate       time.Time       `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	Applied       decimal.Decimal `json:"applied"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// PaymentApplication links a payment line to the bill/invoice line it pays
// down. Partial payments produce several applications; a split payment across
// invoices produces one application per target.
type PaymentApplication struct {
	ApplicationID        string          `json:"applicationID"` // Primary key (UUID)
	PartyID              string          `json:"partyID"`
	PaymentTransactionID string          `json:"paymentTransactionID"`
	ItemTransactionID    string          `json:"itemTransactionID"`
	Amount               decimal.Decimal `json:"amount"`
	AuditFields
}

// AgingBucket labels one overdue band of an aging schedule.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "CURRENT"
	Bucket1To30   AgingBucket = "1-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
)

// AgingReport partitions a party's open items by days past due as of a date.
// GrandTotal must equal the party's derived open balance.
type AgingReport struct {
	PartyID    string                          `json:"partyID"`
	PartyName  string                          `json:"partyName"`
	AsOf       time.Time                       `json:"asOf"`
	Buckets    map[AgingBucket]decimal.Decimal `json:"buckets"`
	Items      []AgedItem                      `json:"items"`
	GrandTotal decimal.Decimal                 `json:"grandTotal"`
}

// AgedItem is one open item with its bucket assignment.
type AgedItem struct {
	OpenItem
	DaysPastDue int         `json:"daysPastDue"`
	Bucket      AgingBucket `json:"bucket"`
}
