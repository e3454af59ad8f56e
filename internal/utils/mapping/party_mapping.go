package mapping

import (
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/models"
)

// ToModelParty converts a domain Party to a model Party.
func ToModelParty(d domain.Party) models.Party {
	m := models.Party{
		PartyID:          d.PartyID,
		Name:             d.Name,
		Kind:             models.PartyKind(d.Kind),
		PaymentTermsDays: d.PaymentTermsDays,
		CreditLimit:      d.CreditLimit,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.DefaultAccountID != "" {
		acc := d.DefaultAccountID
		m.DefaultAccountID = &acc
	}
	return m
}

// ToDomainParty converts a model Party to a domain Party.
func ToDomainParty(m models.Party) domain.Party {
	d := domain.Party{
		PartyID:          m.PartyID,
		Name:             m.Name,
		Kind:             domain.PartyKind(m.Kind),
		PaymentTermsDays: m.PaymentTermsDays,
		CreditLimit:      m.CreditLimit,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.DefaultAccountID != nil {
		d.DefaultAccountID = *m.DefaultAccountID
	}
	return d
}

// ToModelPaymentApplication converts a domain PaymentApplication to its model.
func ToModelPaymentApplication(d domain.PaymentApplication) models.PaymentApplication {
	return models.PaymentApplication{
		ApplicationID:        d.ApplicationID,
		PartyID:              d.PartyID,
		PaymentTransactionID: d.PaymentTransactionID,
		ItemTransactionID:    d.ItemTransactionID,
		Amount:               d.Amount,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentApplication converts a model PaymentApplication to its domain form.
func ToDomainPaymentApplication(m models.PaymentApplication) domain.PaymentApplication {
	return domain.PaymentApplication{
		ApplicationID:        m.ApplicationID,
		PartyID:              m.PartyID,
		PaymentTransactionID: m.PaymentTransactionID,
		ItemTransactionID:    m.ItemTransactionID,
		Amount:               m.Amount,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
