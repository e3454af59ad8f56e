package accounting

import (
	"fmt"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a transaction amount based on account type and transaction type.
// This is used in both services and repositories to ensure consistent accounting logic.
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	// Determine sign based on accounting convention
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit { // Credit to Asset/Expense
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit { // Debit to Liability/Equity/Revenue
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// ValidateJournalBalance checks that a journal's lines form a valid
// double-entry set: at least two lines, every amount strictly positive, and
// the sum of debits equal to the sum of credits to the cent.
func ValidateJournalBalance(transactions []domain.Transaction) error {
	if len(transactions) < 2 {
		return fmt.Errorf("journal must have at least two transaction entries")
	}

	zero := decimal.NewFromInt(0)
	debitsSum := zero
	creditsSum := zero

	for _, txn := range transactions {
		if txn.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("transaction amount must be positive for transaction ID %s", txn.TransactionID)
		}

		if txn.TransactionType == domain.Debit {
			debitsSum = debitsSum.Add(txn.Amount)
		} else {
			creditsSum = creditsSum.Add(txn.Amount)
		}
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("journal entries do not balance: debits sum is %s and credits sum is %s",
			debitsSum.String(), creditsSum.String())
	}

	return nil
}

// SafeDivide performs a guarded division for ratio computations. A zero
// denominator yields an undefined Ratio instead of an infinity; unguarded
// division previously leaked non-serializable values into report responses.
func SafeDivide(numerator, denominator decimal.Decimal) domain.Ratio {
	if denominator.IsZero() {
		return domain.Ratio{}
	}
	return domain.Ratio{
		Value:   numerator.Div(denominator).RoundBank(4),
		Defined: true,
	}
}
