package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	portsrepo "github.com/agrisuite/genfin_backend/internal/core/ports/repositories"
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/internal/dto"
	"github.com/agrisuite/genfin_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subledger errors.
var (
	ErrPaymentNotPosted = fmt.Errorf("%w: payment line must belong to a posted journal", apperrors.ErrStateConflict)
	ErrPaymentExhausted = fmt.Errorf("%w: payment line is already fully applied", apperrors.ErrValidation)
	ErrOverApplication  = fmt.Errorf("%w: allocation exceeds the item's remaining amount", apperrors.ErrValidation)
)

// subledgerService provides business logic for vendors, customers, and the
// AP/AR open-item subledger. Party balances are never stored; they are always
// derived from posted lines and their payment applications.
type subledgerService struct {
	partyRepo   portsrepo.PartyRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewSubledgerService creates a new subledger service.
func NewSubledgerService(
	partyRepo portsrepo.PartyRepositoryWithTx,
	journalRepo portsrepo.JournalRepositoryFacade,
) portssvc.SubledgerSvcFacade {
	return &subledgerService{partyRepo: partyRepo, journalRepo: journalRepo}
}

var _ portssvc.SubledgerSvcFacade = (*subledgerService)(nil)

// CreateParty persists a new vendor or customer.
func (s *subledgerService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
	}

	defaultAccountID := ""
	if req.DefaultAccountID != nil {
		defaultAccountID = *req.DefaultAccountID
	}

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:          uuid.NewString(),
		Name:             req.Name,
		Kind:             req.Kind,
		PaymentTermsDays: req.PaymentTermsDays,
		CreditLimit:      req.CreditLimit,
		DefaultAccountID: defaultAccountID,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID), slog.String("kind", string(party.Kind)))
	return &party, nil
}

// UpdateParty updates a party's mutable details. Kind never changes: a vendor
// does not become a customer.
func (s *subledgerService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.PaymentTermsDays != nil {
		if *req.PaymentTermsDays < 0 {
			return nil, fmt.Errorf("%w: payment terms cannot be negative", apperrors.ErrValidation)
		}
		party.PaymentTermsDays = *req.PaymentTermsDays
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
		}
		party.CreditLimit = *req.CreditLimit
	}
	if req.DefaultAccountID != nil {
		party.DefaultAccountID = *req.DefaultAccountID
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}
	party.LastUpdatedAt = time.Now().UTC()
	party.LastUpdatedBy = userID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		return nil, err
	}

	return party, nil
}

// DeactivateParty marks a party inactive. Existing tagged lines keep their
// history; new journal lines can no longer reference the party.
func (s *subledgerService) DeactivateParty(ctx context.Context, partyID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.partyRepo.DeactivateParty(ctx, partyID, userID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return fmt.Errorf("%w: party %s is already inactive", apperrors.ErrValidation, partyID)
		}
		return err
	}

	logger.Info("Party deactivated", slog.String("party_id", partyID))
	return nil
}

// GetPartyByID retrieves a specific party.
func (s *subledgerService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

// ListParties retrieves a paginated list of parties.
func (s *subledgerService) ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error) {
	var kindFilter *domain.PartyKind
	if params.Kind != nil && *params.Kind != "" {
		k := domain.PartyKind(*params.Kind)
		switch k {
		case domain.Vendor, domain.Customer:
			kindFilter = &k
		default:
			return nil, fmt.Errorf("%w: unknown party kind filter '%s'", apperrors.ErrValidation, *params.Kind)
		}
	}

	return s.partyRepo.ListParties(ctx, kindFilter, params.Limit, params.Offset)
}

// PartyBalance derives the party's open balance: the sum of remaining amounts
// on its open items.
func (s *subledgerService) PartyBalance(ctx context.Context, partyID string) (decimal.Decimal, error) {
	if _, err := s.partyRepo.FindPartyByID(ctx, partyID); err != nil {
		return decimal.Zero, err
	}

	items, err := s.partyRepo.FindOpenItemsByParty(ctx, partyID, time.Now().UTC())
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, item := range items {
		balance = balance.Add(item.Remaining)
	}
	return balance, nil
}

// bucketFor assigns the aging band for a number of days past due.
func bucketFor(daysPastDue int) domain.AgingBucket {
	switch {
	case daysPastDue <= 0:
		return domain.BucketCurrent
	case daysPastDue <= 30:
		return domain.Bucket1To30
	case daysPastDue <= 60:
		return domain.Bucket31To60
	case daysPastDue <= 90:
		return domain.Bucket61To90
	default:
		return domain.BucketOver90
	}
}

// Aging partitions a party's open items into overdue buckets as of a date.
// The grand total always equals the sum of bucket totals, since every item
// lands in exactly one bucket.
func (s *subledgerService) Aging(ctx context.Context, partyID string, asOf time.Time) (*domain.AgingReport, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	items, err := s.partyRepo.FindOpenItemsByParty(ctx, partyID, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.AgingReport{
		PartyID:   party.PartyID,
		PartyName: party.Name,
		AsOf:      asOf,
		Buckets: map[domain.AgingBucket]decimal.Decimal{
			domain.BucketCurrent: decimal.Zero,
			domain.Bucket1To30:   decimal.Zero,
			domain.Bucket31To60:  decimal.Zero,
			domain.Bucket61To90:  decimal.Zero,
			domain.BucketOver90:  decimal.Zero,
		},
		GrandTotal: decimal.Zero,
	}

	for _, item := range items {
		daysPastDue := int(asOf.Sub(item.DueDate).Hours() / 24)
		bucket := bucketFor(daysPastDue)

		report.Items = append(report.Items, domain.AgedItem{
			OpenItem:    item,
			DaysPastDue: daysPastDue,
			Bucket:      bucket,
		})
		report.Buckets[bucket] = report.Buckets[bucket].Add(item.Remaining)
		report.GrandTotal = report.GrandTotal.Add(item.Remaining)
	}

	return report, nil
}

// ApplyPayment applies a posted payment line against the party's open items.
// Explicit allocations are honored exactly; without them the payment walks the
// open items FIFO by due date. The open items are locked for the duration, so
// two concurrent applications cannot overpay the same item.
func (s *subledgerService) ApplyPayment(ctx context.Context, partyID string, req dto.ApplyPaymentRequest, userID string) (*dto.ApplyPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	payment, err := s.journalRepo.FindTransactionByID(ctx, req.PaymentTransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment line %s not found", apperrors.ErrNotFound, req.PaymentTransactionID)
		}
		return nil, err
	}
	if payment.PartyID != party.PartyID {
		return nil, fmt.Errorf("%w: payment line %s is not tagged to party %s", apperrors.ErrValidation, payment.TransactionID, partyID)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, payment.JournalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s has status %s", ErrPaymentNotPosted, journal.JournalID, journal.Status)
	}

	tx, err := s.partyRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.partyRepo.Rollback(ctx, tx)
	}()

	alreadyApplied, err := s.partyRepo.SumApplicationsByPayment(ctx, tx, payment.TransactionID)
	if err != nil {
		return nil, err
	}
	capacity := payment.Amount.Sub(alreadyApplied)
	if !capacity.IsPositive() {
		return nil, fmt.Errorf("%w: payment line %s", ErrPaymentExhausted, payment.TransactionID)
	}

	openItems, err := s.partyRepo.FindOpenItemsByPartyForUpdate(ctx, tx, partyID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var applications []domain.PaymentApplication

	if len(req.Allocations) > 0 {
		applications, err = buildExplicitApplications(party.PartyID, payment.TransactionID, req.Allocations, openItems, capacity, now, userID)
	} else {
		applications = buildFIFOApplications(party.PartyID, payment.TransactionID, openItems, capacity, now, userID)
	}
	if err != nil {
		return nil, err
	}
	if len(applications) == 0 {
		return nil, fmt.Errorf("%w: party %s has no open items to apply against", apperrors.ErrValidation, partyID)
	}

	if err := s.partyRepo.SavePaymentApplicationsInTx(ctx, tx, applications); err != nil {
		return nil, err
	}
	if err := s.partyRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	applied := decimal.Zero
	for _, a := range applications {
		applied = applied.Add(a.Amount)
	}
	unapplied := capacity.Sub(applied)

	logger.Info("Payment applied",
		slog.String("party_id", partyID),
		slog.String("payment_transaction_id", payment.TransactionID),
		slog.Int("applications", len(applications)),
		slog.String("unapplied", unapplied.String()),
	)

	res := dto.ToApplyPaymentResponse(applications, unapplied)
	return &res, nil
}

// buildExplicitApplications validates caller-directed allocations against the
// locked open items and the payment's remaining capacity.
func buildExplicitApplications(
	partyID, paymentTransactionID string,
	allocations []dto.PaymentAllocation,
	openItems []domain.OpenItem,
	capacity decimal.Decimal,
	now time.Time,
	userID string,
) ([]domain.PaymentApplication, error) {
	byItem := make(map[string]domain.OpenItem, len(openItems))
	for _, item := range openItems {
		byItem[item.TransactionID] = item
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	total := decimal.Zero
	applications := make([]domain.PaymentApplication, 0, len(allocations))
	for _, alloc := range allocations {
		if !alloc.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: allocation amount must be positive", apperrors.ErrValidation)
		}
		item, ok := byItem[alloc.ItemTransactionID]
		if !ok {
			return nil, fmt.Errorf("%w: open item %s not found for party %s", apperrors.ErrNotFound, alloc.ItemTransactionID, partyID)
		}
		if alloc.Amount.GreaterThan(item.Remaining) {
			return nil, fmt.Errorf("%w: item %s has %s remaining, allocation is %s",
				ErrOverApplication, item.TransactionID, item.Remaining.String(), alloc.Amount.String())
		}
		// Consume the item's remaining so a second allocation against the same
		// item is checked against what this request has already taken.
		item.Remaining = item.Remaining.Sub(alloc.Amount)
		byItem[alloc.ItemTransactionID] = item
		total = total.Add(alloc.Amount)
		if total.GreaterThan(capacity) {
			return nil, fmt.Errorf("%w: allocations total %s exceeds payment capacity %s",
				apperrors.ErrValidation, total.String(), capacity.String())
		}

		applications = append(applications, domain.PaymentApplication{
			ApplicationID:        uuid.NewString(),
			PartyID:              partyID,
			PaymentTransactionID: paymentTransactionID,
			ItemTransactionID:    alloc.ItemTransactionID,
			Amount:               alloc.Amount,
			AuditFields:          audit,
		})
	}

	return applications, nil
}

// buildFIFOApplications walks the open items oldest due date first, paying
// each down until the payment capacity runs out.
func buildFIFOApplications(
	partyID, paymentTransactionID string,
	openItems []domain.OpenItem,
	capacity decimal.Decimal,
	now time.Time,
	userID string,
) []domain.PaymentApplication {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	var applications []domain.PaymentApplication
	remaining := capacity
	for _, item := range openItems {
		if !remaining.IsPositive() {
			break
		}
		amount := decimal.Min(remaining, item.Remaining)
		if !amount.IsPositive() {
			continue
		}

		applications = append(applications, domain.PaymentApplication{
			ApplicationID:        uuid.NewString(),
			PartyID:              partyID,
			PaymentTransactionID: paymentTransactionID,
			ItemTransactionID:    item.TransactionID,
			Amount:               amount,
			AuditFields:          audit,
		})
		remaining = remaining.Sub(amount)
	}

	return applications
}
