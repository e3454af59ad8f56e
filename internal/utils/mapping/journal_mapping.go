package mapping

import (
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		JournalDate:        d.JournalDate,
		Description:        d.Description,
		Reference:          d.Reference,
		Status:             models.JournalStatus(d.Status),
		PostedAt:           d.PostedAt,
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		JournalDate:        m.JournalDate,
		Description:        m.Description,
		Reference:          m.Reference,
		Status:             domain.JournalStatus(m.Status),
		PostedAt:           m.PostedAt,
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:   d.TransactionID,
		JournalID:       d.JournalID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		Memo:            d.Memo,
		DocumentDate:    d.DocumentDate,
		RunningBalance:  d.RunningBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.PartyID != "" {
		party := d.PartyID
		m.PartyID = &party
	}
	if d.DocumentRef != "" {
		ref := d.DocumentRef
		m.DocumentRef = &ref
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		JournalID:       m.JournalID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Memo:            m.Memo,
		DocumentDate:    m.DocumentDate,
		RunningBalance:  m.RunningBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.PartyID != nil {
		d.PartyID = *m.PartyID
	}
	if m.DocumentRef != nil {
		d.DocumentRef = *m.DocumentRef
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
