package dto

import (
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is one line of a journal creation request. Amount
// must be strictly positive; the side is carried by TransactionType.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Memo            string                 `json:"memo"`
	// Subledger tag, present on vendor bill / customer invoice lines.
	PartyID      string     `json:"partyID"`
	DocumentRef  string     `json:"documentRef"`
	DocumentDate *time.Time `json:"documentDate"`
}

// CreateJournalRequest defines the data needed to create a draft journal.
type CreateJournalRequest struct {
	JournalDate  time.Time                  `json:"journalDate" binding:"required"`
	Description  string                     `json:"description" binding:"required"`
	Reference    string                     `json:"reference"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
}

// VoidJournalRequest defines the optional parameters for voiding a posted
// journal. When EffectiveDate is nil the reversal posts on the original
// journal date, which requires that date's period to still be open.
type VoidJournalRequest struct {
	EffectiveDate *time.Time `json:"effectiveDate"`
	Reason        string     `json:"reason"`
}

// TransactionResponse defines the data returned for a transaction line.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	Type           string          `json:"type"` // DEBIT or CREDIT
	Memo           string          `json:"memo,omitempty"`
	PartyID        string          `json:"partyID,omitempty"`
	DocumentRef    string          `json:"documentRef,omitempty"`
	DocumentDate   *time.Time      `json:"documentDate,omitempty"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	JournalDate        time.Time             `json:"journalDate"`
	Description        string                `json:"description"`
	Reference          string                `json:"reference,omitempty"`
	Status             domain.JournalStatus  `json:"status"`
	PostedAt           *time.Time            `json:"postedAt,omitempty"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
	Transactions       []TransactionResponse `json:"transactions,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		AccountID:      txn.AccountID,
		Amount:         txn.Amount,
		Type:           string(txn.TransactionType),
		Memo:           txn.Memo,
		PartyID:        txn.PartyID,
		DocumentRef:    txn.DocumentRef,
		DocumentDate:   txn.DocumentDate,
		RunningBalance: txn.RunningBalance,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:          j.JournalID,
		JournalDate:        j.JournalDate,
		Description:        j.Description,
		Reference:          j.Reference,
		Status:             j.Status,
		PostedAt:           j.PostedAt,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
		Transactions:       ToTransactionResponses(j.Transactions),
	}
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"` // Optional filter: DRAFT, POSTED, REVERSED
}

// ListJournalsResponse wraps a page of journals with the next-page token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListTransactionsParams defines query parameters for an account's transaction history.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
