package dto

import (
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
// The routing number must pass the ABA checksum.
type CreateBankAccountRequest struct {
	Name            string `json:"name" binding:"required"`
	RoutingNumber   string `json:"routingNumber" binding:"required,len=9"`
	AccountNumber   string `json:"accountNumber" binding:"required"`
	GLAccountID     string `json:"glAccountID" binding:"required"`
	NextCheckNumber int64  `json:"nextCheckNumber" binding:"min=1"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID   string    `json:"bankAccountID"`
	Name            string    `json:"name"`
	RoutingNumber   string    `json:"routingNumber"`
	AccountNumber   string    `json:"accountNumber"`
	GLAccountID     string    `json:"glAccountID"`
	NextCheckNumber int64     `json:"nextCheckNumber"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to its DTO.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:   b.BankAccountID,
		Name:            b.Name,
		RoutingNumber:   b.RoutingNumber,
		AccountNumber:   b.AccountNumber,
		GLAccountID:     b.GLAccountID,
		NextCheckNumber: b.NextCheckNumber,
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
	}
}

// ToListBankAccountResponse converts a slice of bank accounts to DTOs.
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i, b := range accounts {
		res[i] = ToBankAccountResponse(&b)
	}
	return res
}

// IssueCheckRequest defines the data needed to issue a check. The check
// number is assigned from the bank account's counter, never by the caller.
type IssueCheckRequest struct {
	PayeeName string          `json:"payeeName" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
}

// CheckResponse defines the data returned for an issued check.
type CheckResponse struct {
	CheckID       string          `json:"checkID"`
	BankAccountID string          `json:"bankAccountID"`
	CheckNumber   int64           `json:"checkNumber"`
	PayeeName     string          `json:"payeeName"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	MICRLine      string          `json:"micrLine"`
	Voided        bool            `json:"voided"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToCheckResponse converts a domain.Check to its DTO.
func ToCheckResponse(c *domain.Check) CheckResponse {
	return CheckResponse{
		CheckID:       c.CheckID,
		BankAccountID: c.BankAccountID,
		CheckNumber:   c.CheckNumber,
		PayeeName:     c.PayeeName,
		Amount:        c.Amount,
		Date:          c.Date,
		MICRLine:      c.MICRLine,
		Voided:        c.Voided,
		CreatedAt:     c.CreatedAt,
	}
}

// ToListCheckResponse converts a slice of checks to DTOs.
func ToListCheckResponse(checks []domain.Check) []CheckResponse {
	res := make([]CheckResponse, len(checks))
	for i, c := range checks {
		res[i] = ToCheckResponse(&c)
	}
	return res
}

// ACHEntryRequest is one payee payment in a batch generation request.
type ACHEntryRequest struct {
	TransactionCode domain.ACHTransactionCode `json:"transactionCode" binding:"required,oneof=22 27"`
	RoutingNumber   string                    `json:"routingNumber" binding:"required,len=9"`
	AccountNumber   string                    `json:"accountNumber" binding:"required"`
	Amount          decimal.Decimal           `json:"amount" binding:"required"`
	ReceiverID      string                    `json:"receiverID" binding:"required"`
	ReceiverName    string                    `json:"receiverName" binding:"required"`
}

// GenerateACHBatchRequest defines the data needed to generate a NACHA file
// for one batch of payments.
type GenerateACHBatchRequest struct {
	SECCode          domain.SECCode    `json:"secCode" binding:"required,oneof=PPD CCD"`
	CompanyEntryDesc string            `json:"companyEntryDescription" binding:"required,max=10"`
	EffectiveDate    time.Time         `json:"effectiveDate" binding:"required"`
	Entries          []ACHEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// ACHBatchResponse defines the batch header data returned after generation.
// The file itself is fetched from the file endpoint.
type ACHBatchResponse struct {
	BatchID          string          `json:"batchID"`
	BankAccountID    string          `json:"bankAccountID"`
	SECCode          domain.SECCode  `json:"secCode"`
	CompanyEntryDesc string          `json:"companyEntryDescription"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	EntryCount       int             `json:"entryCount"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	GeneratedAt      *time.Time      `json:"generatedAt,omitempty"`
}

// ToACHBatchResponse converts a domain.ACHBatch to its DTO.
func ToACHBatchResponse(b *domain.ACHBatch) ACHBatchResponse {
	return ACHBatchResponse{
		BatchID:          b.BatchID,
		BankAccountID:    b.BankAccountID,
		SECCode:          b.SECCode,
		CompanyEntryDesc: b.CompanyEntryDesc,
		EffectiveDate:    b.EffectiveDate,
		EntryCount:       b.EntryCount,
		TotalCredit:      b.TotalCredit,
		TotalDebit:       b.TotalDebit,
		GeneratedAt:      b.GeneratedAt,
	}
}

// ToListACHBatchResponse converts a slice of batches to DTOs.
func ToListACHBatchResponse(batches []domain.ACHBatch) []ACHBatchResponse {
	res := make([]ACHBatchResponse, len(batches))
	for i, b := range batches {
		res[i] = ToACHBatchResponse(&b)
	}
	return res
}
