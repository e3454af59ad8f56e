package services

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PartyReaderSvc defines read operations for party data
type PartyReaderSvc interface {
	// GetPartyByID retrieves a specific party.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties.
	ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error)

	// PartyBalance derives a party's open balance from its posted lines and
	// applications. Balances are never stored.
	PartyBalance(ctx context.Context, partyID string) (decimal.Decimal, error)
}

// PartyWriterSvc defines write operations for party data
type PartyWriterSvc interface {
	// CreateParty persists a new vendor or customer.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error)

	// UpdateParty updates an existing party's details.
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	// DeactivateParty marks a party as inactive.
	DeactivateParty(ctx context.Context, partyID string, userID string) error
}

// AgingSvc defines the AP/AR aging and payment application operations
type AgingSvc interface {
	// Aging partitions a party's open items into overdue buckets as of a date.
	Aging(ctx context.Context, partyID string, asOf time.Time) (*domain.AgingReport, error)

	// ApplyPayment applies a posted payment line against the party's open
	// items, FIFO by due date unless explicit allocations are given.
	ApplyPayment(ctx context.Context, partyID string, req dto.ApplyPaymentRequest, userID string) (*dto.ApplyPaymentResponse, error)
}

// SubledgerSvcFacade combines all subledger-related service interfaces
type SubledgerSvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
	AgingSvc
}
