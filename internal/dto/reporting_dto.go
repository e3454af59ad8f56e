package dto

import (
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: report.AsOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(report.Rows)),
	}
	for i, row := range report.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			Debit:         row.Debit,
			Credit:        row.Credit,
		}
	}
	response.Totals.Debit = report.TotalDebits
	response.Totals.Credit = report.TotalCredits
	return response
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		res[i] = AccountAmountResponse{
			AccountID:     a.AccountID,
			AccountNumber: a.AccountNumber,
			Name:          a.Name,
			Amount:        a.NetAmount,
		}
	}
	return res
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
	PriorPeriod *ProfitAndLossResponse `json:"priorPeriod,omitempty"`
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.PAndLReport) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: report.From.Format("2006-01-02"),
		ToDate:   report.To.Format("2006-01-02"),
		Revenue:  toAccountAmountResponses(report.Revenue),
		Expenses: toAccountAmountResponses(report.Expenses),
	}
	response.Summary.TotalRevenue = report.TotalRevenue
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetProfit = report.NetProfit
	if report.PriorPeriod != nil {
		prior := ToProfitAndLossResponse(report.PriorPeriod)
		response.PriorPeriod = &prior
	}
	return response
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf                string                  `json:"asOf"`
	CurrentAssets       []AccountAmountResponse `json:"currentAssets"`
	FixedAssets         []AccountAmountResponse `json:"fixedAssets"`
	CurrentLiabilities  []AccountAmountResponse `json:"currentLiabilities"`
	LongTermLiabilities []AccountAmountResponse `json:"longTermLiabilities"`
	Equity              []AccountAmountResponse `json:"equity"`
	Summary             struct {
		TotalAssets           decimal.Decimal `json:"totalAssets"`
		TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
		TotalEquity           decimal.Decimal `json:"totalEquity"`
		CurrentPeriodEarnings decimal.Decimal `json:"currentPeriodEarnings"`
	} `json:"summary"`
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:                report.AsOf.Format("2006-01-02"),
		CurrentAssets:       toAccountAmountResponses(report.CurrentAssets),
		FixedAssets:         toAccountAmountResponses(report.FixedAssets),
		CurrentLiabilities:  toAccountAmountResponses(report.CurrentLiabilities),
		LongTermLiabilities: toAccountAmountResponses(report.LongTermLiabilities),
		Equity:              toAccountAmountResponses(report.Equity),
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.CurrentPeriodEarnings = report.CurrentPeriodEarnings
	return response
}

// CashFlowGroupResponse is one activity section of the cash-flow response.
type CashFlowGroupResponse struct {
	Activity string                  `json:"activity"`
	Lines    []AccountAmountResponse `json:"lines"`
	Total    decimal.Decimal         `json:"total"`
}

// CashFlowResponse represents the cash-flow statement response
type CashFlowResponse struct {
	FromDate         string                  `json:"fromDate"`
	ToDate           string                  `json:"toDate"`
	BeginningBalance decimal.Decimal         `json:"beginningBalance"`
	Groups           []CashFlowGroupResponse `json:"groups"`
	NetChange        decimal.Decimal         `json:"netChange"`
	EndingBalance    decimal.Decimal         `json:"endingBalance"`
}

// ToCashFlowResponse converts a domain cash-flow report to a DTO response
func ToCashFlowResponse(report *domain.CashFlowReport) CashFlowResponse {
	response := CashFlowResponse{
		FromDate:         report.From.Format("2006-01-02"),
		ToDate:           report.To.Format("2006-01-02"),
		BeginningBalance: report.BeginningBalance,
		Groups:           make([]CashFlowGroupResponse, len(report.Groups)),
		NetChange:        report.NetChange,
		EndingBalance:    report.EndingBalance,
	}
	for i, g := range report.Groups {
		response.Groups[i] = CashFlowGroupResponse{
			Activity: string(g.Activity),
			Lines:    toAccountAmountResponses(g.Lines),
			Total:    g.Total,
		}
	}
	return response
}

// RatioResponse represents the financial ratios response. Undefined ratios
// marshal to null rather than an infinity.
type RatioResponse struct {
	AsOf           string          `json:"asOf"`
	CurrentRatio   domain.Ratio    `json:"currentRatio"`
	QuickRatio     domain.Ratio    `json:"quickRatio"`
	WorkingCapital decimal.Decimal `json:"workingCapital"`
	DebtToEquity   domain.Ratio    `json:"debtToEquity"`
	GrossMargin    domain.Ratio    `json:"grossMargin"`
	NetMargin      domain.Ratio    `json:"netMargin"`
}

// ToRatioResponse converts a domain ratio report to a DTO response
func ToRatioResponse(report *domain.RatioReport) RatioResponse {
	return RatioResponse{
		AsOf:           report.AsOf.Format("2006-01-02"),
		CurrentRatio:   report.CurrentRatio,
		QuickRatio:     report.QuickRatio,
		WorkingCapital: report.WorkingCapital,
		DebtToEquity:   report.DebtToEquity,
		GrossMargin:    report.GrossMargin,
		NetMargin:      report.NetMargin,
	}
}

// AgedItemResponse is one open item with its bucket assignment.
type AgedItemResponse struct {
	TransactionID string          `json:"transactionID"`
	JournalID     string          `json:"journalID"`
	DocumentRef   string          `json:"documentRef"`
	DocumentDate  string          `json:"documentDate"`
	DueDate       string          `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	Remaining     decimal.Decimal `json:"remaining"`
	DaysPastDue   int             `json:"daysPastDue"`
	Bucket        string          `json:"bucket"`
}

// AgingResponse represents the aging schedule response for one party.
type AgingResponse struct {
	PartyID    string                     `json:"partyID"`
	PartyName  string                     `json:"partyName"`
	AsOf       string                     `json:"asOf"`
	Buckets    map[string]decimal.Decimal `json:"buckets"`
	Items      []AgedItemResponse         `json:"items"`
	GrandTotal decimal.Decimal            `json:"grandTotal"`
}

// ToAgingResponse converts a domain aging report to a DTO response
func ToAgingResponse(report *domain.AgingReport) AgingResponse {
	response := AgingResponse{
		PartyID:    report.PartyID,
		PartyName:  report.PartyName,
		AsOf:       report.AsOf.Format("2006-01-02"),
		Buckets:    make(map[string]decimal.Decimal, len(report.Buckets)),
		Items:      make([]AgedItemResponse, len(report.Items)),
		GrandTotal: report.GrandTotal,
	}
	for bucket, total := range report.Buckets {
		response.Buckets[string(bucket)] = total
	}
	for i, item := range report.Items {
		response.Items[i] = AgedItemResponse{
			TransactionID: item.TransactionID,
			JournalID:     item.JournalID,
			DocumentRef:   item.DocumentRef,
			DocumentDate:  item.DocumentDate.Format("2006-01-02"),
			DueDate:       item.DueDate.Format("2006-01-02"),
			Amount:        item.Amount,
			Remaining:     item.Remaining,
			DaysPastDue:   item.DaysPastDue,
			Bucket:        string(item.Bucket),
		}
	}
	return response
}

// ReportDateRangeParams defines the from/to query parameters shared by
// period-scoped reports.
type ReportDateRangeParams struct {
	From      time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To        time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	WithPrior bool      `form:"withPrior"`
}

// ReportAsOfParams defines the asOf query parameter shared by point-in-time reports.
type ReportAsOfParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
}
