package accounting_test

import (
	"testing"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		txnType     domain.TransactionType
		amount      string
		want        string
		wantErr     bool
	}{
		{
			name:        "debit to asset is positive",
			accountType: domain.Asset,
			txnType:     domain.Debit,
			amount:      "100.00",
			want:        "100.00",
		},
		{
			name:        "credit to asset is negative",
			accountType: domain.Asset,
			txnType:     domain.Credit,
			amount:      "100.00",
			want:        "-100.00",
		},
		{
			name:        "debit to expense is positive",
			accountType: domain.Expense,
			txnType:     domain.Debit,
			amount:      "42.50",
			want:        "42.50",
		},
		{
			name:        "debit to liability is negative",
			accountType: domain.Liability,
			txnType:     domain.Debit,
			amount:      "75.25",
			want:        "-75.25",
		},
		{
			name:        "credit to revenue is positive",
			accountType: domain.Revenue,
			txnType:     domain.Credit,
			amount:      "999.99",
			want:        "999.99",
		},
		{
			name:        "credit to equity is positive",
			accountType: domain.Equity,
			txnType:     domain.Credit,
			amount:      "10.00",
			want:        "10.00",
		},
		{
			name:        "unknown account type errors",
			accountType: domain.AccountType("CONTRA"),
			txnType:     domain.Debit,
			amount:      "1.00",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{
				TransactionID:   "txn-1",
				AccountID:       "acc-1",
				Amount:          decimal.RequireFromString(tt.amount),
				TransactionType: tt.txnType,
			}
			got, err := accounting.CalculateSignedAmount(txn, tt.accountType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestValidateJournalBalance(t *testing.T) {
	line := func(side domain.TransactionType, amount string) domain.Transaction {
		return domain.Transaction{
			TransactionID:   "txn-" + amount,
			Amount:          decimal.RequireFromString(amount),
			TransactionType: side,
		}
	}

	tests := []struct {
		name    string
		lines   []domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "balanced two line journal",
			lines: []domain.Transaction{
				line(domain.Debit, "100.00"),
				line(domain.Credit, "100.00"),
			},
		},
		{
			name: "balanced split journal",
			lines: []domain.Transaction{
				line(domain.Debit, "60.00"),
				line(domain.Debit, "40.00"),
				line(domain.Credit, "100.00"),
			},
		},
		{
			name:    "single line rejected",
			lines:   []domain.Transaction{line(domain.Debit, "100.00")},
			wantErr: true,
			errMsg:  "at least two",
		},
		{
			name: "zero amount rejected",
			lines: []domain.Transaction{
				line(domain.Debit, "0"),
				line(domain.Credit, "0"),
			},
			wantErr: true,
			errMsg:  "must be positive",
		},
		{
			name: "unbalanced journal rejected",
			lines: []domain.Transaction{
				line(domain.Debit, "100.00"),
				line(domain.Credit, "99.99"),
			},
			wantErr: true,
			errMsg:  "do not balance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateJournalBalance(tt.lines)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSafeDivide(t *testing.T) {
	t.Run("zero denominator is undefined", func(t *testing.T) {
		got := accounting.SafeDivide(decimal.NewFromInt(10), decimal.Zero)
		assert.False(t, got.Defined)
		assert.True(t, got.Value.IsZero())
	})

	t.Run("normal division rounds to four places", func(t *testing.T) {
		got := accounting.SafeDivide(decimal.NewFromInt(10), decimal.NewFromInt(3))
		assert.True(t, got.Defined)
		assert.True(t, got.Value.Equal(decimal.RequireFromString("3.3333")), "got %s", got.Value)
	})

	t.Run("negative numerator stays defined", func(t *testing.T) {
		got := accounting.SafeDivide(decimal.NewFromInt(-5), decimal.NewFromInt(2))
		assert.True(t, got.Defined)
		assert.True(t, got.Value.Equal(decimal.RequireFromString("-2.5")), "got %s", got.Value)
	})
}
