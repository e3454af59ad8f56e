package models

import "github.com/shopspring/decimal"

// PartyKind distinguishes AP vendors from AR customers.
type PartyKind string

// Party is the persistence model for a subledger counterparty.
type Party struct {
	PartyID          string          `db:"party_id"`
	Name             string          `db:"name"`
	Kind             PartyKind       `db:"kind"`
	PaymentTermsDays int             `db:"payment_terms_days"`
	CreditLimit      decimal.Decimal `db:"credit_limit"`
	DefaultAccountID *string         `db:"default_account_id"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}

// PaymentApplication is the persistence model for a payment-application link.
type PaymentApplication struct {
	ApplicationID        string          `db:"application_id"`
	PartyID              string          `db:"party_id"`
	PaymentTransactionID string          `db:"payment_transaction_id"`
	ItemTransactionID    string          `db:"item_transaction_id"`
	Amount               decimal.Decimal `db:"amount"`
	AuditFields
}
