package dto

import (
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to create a vendor or customer.
type CreatePartyRequest struct {
	Name             string           `json:"name" binding:"required"`
	Kind             domain.PartyKind `json:"kind" binding:"required,oneof=VENDOR CUSTOMER"`
	PaymentTermsDays int              `json:"paymentTermsDays" binding:"min=0"`
	CreditLimit      decimal.Decimal  `json:"creditLimit"`
	DefaultAccountID *string          `json:"defaultAccountID"`
}

// UpdatePartyRequest defines the data allowed for updating a party.
type UpdatePartyRequest struct {
	Name             *string          `json:"name"`
	PaymentTermsDays *int             `json:"paymentTermsDays"`
	CreditLimit      *decimal.Decimal `json:"creditLimit"`
	DefaultAccountID *string          `json:"defaultAccountID"`
	IsActive         *bool            `json:"isActive"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID          string           `json:"partyID"`
	Name             string           `json:"name"`
	Kind             domain.PartyKind `json:"kind"`
	PaymentTermsDays int              `json:"paymentTermsDays"`
	CreditLimit      decimal.Decimal  `json:"creditLimit"`
	DefaultAccountID string           `json:"defaultAccountID,omitempty"`
	IsActive         bool             `json:"isActive"`
	CreatedAt        time.Time        `json:"createdAt"`
	CreatedBy        string           `json:"createdBy"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:          p.PartyID,
		Name:             p.Name,
		Kind:             p.Kind,
		PaymentTermsDays: p.PaymentTermsDays,
		CreditLimit:      p.CreditLimit,
		DefaultAccountID: p.DefaultAccountID,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}

// ToListPartyResponse converts a slice of domain.Party to PartyResponse DTOs.
func ToListPartyResponse(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i, p := range parties {
		res[i] = ToPartyResponse(&p)
	}
	return res
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	Limit  int     `form:"limit,default=20"`
	Offset int     `form:"offset,default=0"`
	Kind   *string `form:"kind"` // Optional filter: VENDOR or CUSTOMER
}

// PartyBalanceResponse is the derived open balance of a party.
type PartyBalanceResponse struct {
	PartyID string          `json:"partyID"`
	Balance decimal.Decimal `json:"balance"`
}

// PaymentAllocation directs part of a payment at a specific open item.
type PaymentAllocation struct {
	ItemTransactionID string          `json:"itemTransactionID" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}

// ApplyPaymentRequest applies a posted payment line against a party's open
// items. With no explicit allocations the payment is applied FIFO,
// oldest due date first.
type ApplyPaymentRequest struct {
	PaymentTransactionID string              `json:"paymentTransactionID" binding:"required"`
	Allocations          []PaymentAllocation `json:"allocations"`
}

// ApplyPaymentResponse reports the applications created and any unapplied remainder.
type ApplyPaymentResponse struct {
	Applications []PaymentApplicationResponse `json:"applications"`
	Unapplied    decimal.Decimal              `json:"unapplied"`
}

// PaymentApplicationResponse is one created payment-application link.
type PaymentApplicationResponse struct {
	ApplicationID        string          `json:"applicationID"`
	PaymentTransactionID string          `json:"paymentTransactionID"`
	ItemTransactionID    string          `json:"itemTransactionID"`
	Amount               decimal.Decimal `json:"amount"`
}

// ToApplyPaymentResponse converts created applications to the response DTO.
func ToApplyPaymentResponse(apps []domain.PaymentApplication, unapplied decimal.Decimal) ApplyPaymentResponse {
	res := ApplyPaymentResponse{
		Applications: make([]PaymentApplicationResponse, len(apps)),
		Unapplied:    unapplied,
	}
	for i, a := range apps {
		res.Applications[i] = PaymentApplicationResponse{
			ApplicationID:        a.ApplicationID,
			PaymentTransactionID: a.PaymentTransactionID,
			ItemTransactionID:    a.ItemTransactionID,
			Amount:               a.Amount,
		}
	}
	return res
}
