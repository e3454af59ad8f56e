package repositories

import (
	"context"
	"time"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PartyReader defines read operations for party data
type PartyReader interface {
	// FindPartyByID retrieves a specific party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties, optionally filtered by kind.
	ListParties(ctx context.Context, kind *domain.PartyKind, limit int, offset int) ([]domain.Party, error)
}

// PartyWriter defines write operations for party data
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates an existing party's details.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeactivateParty marks a party as inactive.
	DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error
}

// OpenItemReader defines read operations over a party's open subledger items.
// Open items are derived: posted lines tagged to the party joined against the
// sum of their payment applications.
type OpenItemReader interface {
	// FindOpenItemsByParty retrieves the party's open items as of a date,
	// ordered by due date ascending. Items fully applied are excluded, and
	// payment applications recorded after the date are ignored so historical
	// aging runs are point-in-time.
	FindOpenItemsByParty(ctx context.Context, partyID string, asOf time.Time) ([]domain.OpenItem, error)

	// FindOpenItemsByPartyForUpdate is the locking variant used while applying
	// a payment, so two concurrent applications cannot overpay the same item.
	FindOpenItemsByPartyForUpdate(ctx context.Context, tx pgx.Tx, partyID string, asOf time.Time) ([]domain.OpenItem, error)

	// SumApplicationsByPayment returns the total already applied from a payment line.
	SumApplicationsByPayment(ctx context.Context, tx pgx.Tx, paymentTransactionID string) (decimal.Decimal, error)
}

// ApplicationWriter defines write operations for payment applications
type ApplicationWriter interface {
	// SavePaymentApplicationsInTx persists payment-application links within the
	// application transaction.
	SavePaymentApplicationsInTx(ctx context.Context, tx pgx.Tx, applications []domain.PaymentApplication) error
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
	OpenItemReader
	ApplicationWriter
}

// PartyRepositoryWithTx extends PartyRepositoryFacade with transaction capabilities
type PartyRepositoryWithTx interface {
	PartyRepositoryFacade
	TransactionManager
}
