package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether accounts of this type carry a debit-normal balance.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// AccountClassification refines the account type for statement grouping.
// CASH-classified accounts drive the cash-flow statement.
type AccountClassification string

const (
	ClassCash             AccountClassification = "CASH"
	ClassCurrentAsset     AccountClassification = "CURRENT_ASSET"
	ClassFixedAsset       AccountClassification = "FIXED_ASSET"
	ClassCurrentLiability AccountClassification = "CURRENT_LIABILITY"
	ClassLongTermLiab     AccountClassification = "LONG_TERM_LIABILITY"
	ClassEquity           AccountClassification = "EQUITY"
	ClassRevenue          AccountClassification = "REVENUE"
	ClassCOGS             AccountClassification = "COGS"
	ClassExpense          AccountClassification = "EXPENSE"
)

// Account represents one account in the chart of accounts.
// The cached Balance is derived state: it is only ever mutated inside the
// journal posting transaction and must equal the signed sum of posted lines.
type Account struct {
	AccountID       string                `json:"accountID"` // Primary key (UUID)
	AccountNumber   string                `json:"accountNumber"`
	Name            string                `json:"name"`
	AccountType     AccountType           `json:"accountType"`
	Classification  AccountClassification `json:"classification"`
	ParentAccountID string                `json:"parentAccountID,omitempty"` // Nullable self-reference
	Description     string                `json:"description"`
	IsActive        bool                  `json:"isActive"` // Deactivation only, never deletion
	Balance         decimal.Decimal       `json:"balance"`
	AuditFields
}
