package dto

import (
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountNumber   string                       `json:"accountNumber" binding:"required"`
	Name            string                       `json:"name" binding:"required"`
	AccountType     domain.AccountType           `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Classification  domain.AccountClassification `json:"classification" binding:"required,oneof=CASH CURRENT_ASSET FIXED_ASSET CURRENT_LIABILITY LONG_TERM_LIABILITY EQUITY REVENUE COGS EXPENSE"`
	ParentAccountID *string                      `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string                       `json:"description"`     // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Type and classification are immutable once the account has posted history.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string                       `json:"accountID"`
	AccountNumber   string                       `json:"accountNumber"`
	Name            string                       `json:"name"`
	AccountType     domain.AccountType           `json:"accountType"`
	Classification  domain.AccountClassification `json:"classification"`
	ParentAccountID string                       `json:"parentAccountID,omitempty"`
	Description     string                       `json:"description"`
	IsActive        bool                         `json:"isActive"`
	Balance         decimal.Decimal              `json:"balance"`
	CreatedAt       time.Time                    `json:"createdAt"`
	CreatedBy       string                       `json:"createdBy"`
	LastUpdatedAt   time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy   string                       `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		AccountNumber:   acc.AccountNumber,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Classification:  acc.Classification,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int     `form:"limit,default=20"`
	Offset int     `form:"offset,default=0"`
	Type   *string `form:"type"` // Optional filter by account type
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
