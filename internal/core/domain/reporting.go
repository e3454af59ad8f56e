package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
// Debit-normal accounts show positive balances in the Debit column,
// credit-normal accounts in the Credit column.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists all account balances as of a date. Equal grand
// totals are both an output invariant and a regression check on posting.
type TrialBalanceReport struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID      string                `json:"accountID"`
	AccountNumber  string                `json:"accountNumber"`
	Name           string                `json:"name"`
	Classification AccountClassification `json:"classification,omitempty"`
	NetAmount      decimal.Decimal       `json:"netAmount"`
}

// PAndLReport represents a profit and loss report over a date range, with an
// optional prior-period comparison (same window shifted back by its length).
type PAndLReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	PriorPeriod   *PAndLReport    `json:"priorPeriod,omitempty"`
}

// BalanceSheetReport groups assets current/fixed and liabilities
// current/long-term. Equity lists the equity accounts (retained earnings
// accumulates there through closing journals); CurrentPeriodEarnings is the
// revenue/expense net not yet swept by a close. The report is only produced
// when Assets == Liabilities + Equity exactly.
type BalanceSheetReport struct {
	AsOf                  time.Time       `json:"asOf"`
	CurrentAssets         []AccountAmount `json:"currentAssets"`
	FixedAssets           []AccountAmount `json:"fixedAssets"`
	CurrentLiabilities    []AccountAmount `json:"currentLiabilities"`
	LongTermLiabilities   []AccountAmount `json:"longTermLiabilities"`
	Equity                []AccountAmount `json:"equity"`
	TotalAssets           decimal.Decimal `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal `json:"totalEquity"`
	CurrentPeriodEarnings decimal.Decimal `json:"currentPeriodEarnings"`
}

// CashFlowActivity is the statement bucket a cash movement is classified into,
// based on the counter-account's classification.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "OPERATING"
	ActivityInvesting CashFlowActivity = "INVESTING"
	ActivityFinancing CashFlowActivity = "FINANCING"
)

// CashFlowGroup is one activity section of the cash-flow statement.
type CashFlowGroup struct {
	Activity CashFlowActivity `json:"activity"`
	Lines    []AccountAmount  `json:"lines"`
	Total    decimal.Decimal  `json:"total"`
}

// CashFlowReport reclassifies posted lines touching cash accounts into
// operating/investing/financing buckets.
type CashFlowReport struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	BeginningBalance decimal.Decimal `json:"beginningBalance"`
	Groups           []CashFlowGroup `json:"groups"`
	NetChange        decimal.Decimal `json:"netChange"`
	EndingBalance    decimal.Decimal `json:"endingBalance"`
}

// Ratio is a guarded division result. Defined is false when the denominator
// was zero; the zero Value must then be ignored by consumers. Marshals to
// JSON null when undefined so infinities never reach a serialized response.
type Ratio struct {
	Value   decimal.Decimal
	Defined bool
}

// MarshalJSON renders undefined ratios as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return r.Value.MarshalJSON()
}

// RatioReport holds the standard financial ratios as of a date.
type RatioReport struct {
	AsOf           time.Time       `json:"asOf"`
	CurrentRatio   Ratio           `json:"currentRatio"`
	QuickRatio     Ratio           `json:"quickRatio"`
	WorkingCapital decimal.Decimal `json:"workingCapital"`
	DebtToEquity   Ratio           `json:"debtToEquity"`
	GrossMargin    Ratio           `json:"grossMargin"`
	NetMargin      Ratio           `json:"netMargin"`
}
