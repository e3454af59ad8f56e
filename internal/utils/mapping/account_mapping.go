package mapping

import (
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:      d.AccountID,
		AccountNumber:  d.AccountNumber,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		Classification: models.AccountClassification(d.Classification),
		Description:    d.Description,
		IsActive:       d.IsActive,
		Balance:        d.Balance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.ParentAccountID != "" {
		parent := d.ParentAccountID
		m.ParentAccountID = &parent
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:      m.AccountID,
		AccountNumber:  m.AccountNumber,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		Classification: domain.AccountClassification(m.Classification),
		Description:    m.Description,
		IsActive:       m.IsActive,
		Balance:        m.Balance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ParentAccountID != nil {
		d.ParentAccountID = *m.ParentAccountID
	}
	return d
}
