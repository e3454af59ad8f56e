package mapping

import (
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount.
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:   d.BankAccountID,
		Name:            d.Name,
		RoutingNumber:   d.RoutingNumber,
		AccountNumber:   d.AccountNumber,
		GLAccountID:     d.GLAccountID,
		NextCheckNumber: d.NextCheckNumber,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount.
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:   m.BankAccountID,
		Name:            m.Name,
		RoutingNumber:   m.RoutingNumber,
		AccountNumber:   m.AccountNumber,
		GLAccountID:     m.GLAccountID,
		NextCheckNumber: m.NextCheckNumber,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCheck converts a domain Check to a model Check.
func ToModelCheck(d domain.Check) models.Check {
	return models.Check{
		CheckID:       d.CheckID,
		BankAccountID: d.BankAccountID,
		CheckNumber:   d.CheckNumber,
		PayeeName:     d.PayeeName,
		Amount:        d.Amount,
		Date:          d.Date,
		MICRLine:      d.MICRLine,
		Voided:        d.Voided,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCheck converts a model Check to a domain Check.
func ToDomainCheck(m models.Check) domain.Check {
	return domain.Check{
		CheckID:       m.CheckID,
		BankAccountID: m.BankAccountID,
		CheckNumber:   m.CheckNumber,
		PayeeName:     m.PayeeName,
		Amount:        m.Amount,
		Date:          m.Date,
		MICRLine:      m.MICRLine,
		Voided:        m.Voided,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelACHBatch converts a domain ACHBatch header to its model.
func ToModelACHBatch(d domain.ACHBatch) models.ACHBatch {
	return models.ACHBatch{
		BatchID:          d.BatchID,
		BankAccountID:    d.BankAccountID,
		SECCode:          string(d.SECCode),
		CompanyEntryDesc: d.CompanyEntryDesc,
		EffectiveDate:    d.EffectiveDate,
		EntryCount:       d.EntryCount,
		TotalCredit:      d.TotalCredit,
		TotalDebit:       d.TotalDebit,
		FileContents:     d.FileContents,
		GeneratedAt:      d.GeneratedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainACHBatch converts a model ACHBatch header to its domain form.
// Entries are loaded and attached separately.
func ToDomainACHBatch(m models.ACHBatch) domain.ACHBatch {
	return domain.ACHBatch{
		BatchID:          m.BatchID,
		BankAccountID:    m.BankAccountID,
		SECCode:          domain.SECCode(m.SECCode),
		CompanyEntryDesc: m.CompanyEntryDesc,
		EffectiveDate:    m.EffectiveDate,
		EntryCount:       m.EntryCount,
		TotalCredit:      m.TotalCredit,
		TotalDebit:       m.TotalDebit,
		FileContents:     m.FileContents,
		GeneratedAt:      m.GeneratedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelACHEntry converts a domain ACHEntry to its model.
func ToModelACHEntry(batchID string, d domain.ACHEntry) models.ACHEntry {
	return models.ACHEntry{
		EntryID:         d.EntryID,
		BatchID:         batchID,
		TransactionCode: string(d.TransactionCode),
		RoutingNumber:   d.RoutingNumber,
		AccountNumber:   d.AccountNumber,
		Amount:          d.Amount,
		ReceiverID:      d.ReceiverID,
		ReceiverName:    d.ReceiverName,
		TraceNumber:     d.TraceNumber,
	}
}

// ToDomainACHEntry converts a model ACHEntry to its domain form.
func ToDomainACHEntry(m models.ACHEntry) domain.ACHEntry {
	return domain.ACHEntry{
		EntryID:         m.EntryID,
		TransactionCode: domain.ACHTransactionCode(m.TransactionCode),
		RoutingNumber:   m.RoutingNumber,
		AccountNumber:   m.AccountNumber,
		Amount:          m.Amount,
		ReceiverID:      m.ReceiverID,
		ReceiverName:    m.ReceiverName,
		TraceNumber:     m.TraceNumber,
	}
}
