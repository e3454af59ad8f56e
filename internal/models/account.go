package models

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountClassification refines the account type for statement grouping.
type AccountClassification string

// Account is the persistence model for a chart-of-accounts row.
type Account struct {
	AccountID       string                `db:"account_id"`
	AccountNumber   string                `db:"account_number"`
	Name            string                `db:"name"`
	AccountType     AccountType           `db:"account_type"`
	Classification  AccountClassification `db:"classification"`
	ParentAccountID *string               `db:"parent_account_id"`
	Description     string                `db:"description"`
	IsActive        bool                  `db:"is_active"`
	Balance         decimal.Decimal       `db:"balance"`
	AuditFields
}
