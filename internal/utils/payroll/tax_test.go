package payroll_test

import (
	"testing"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/agrisuite/genfin_backend/internal/utils/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() payroll.Config {
	return payroll.Config{
		FUTARate:     decimal.RequireFromString("0.006"),
		FUTAWageBase: decimal.NewFromInt(7000),
		SUTARate:     decimal.RequireFromString("0.027"),
		SUTAWageBase: decimal.NewFromInt(9000),
	}
}

func singleBiweekly() domain.PayrollProfile {
	return domain.PayrollProfile{
		EmployeeID:   "emp-1",
		EmployeeName: "Test Employee",
		FilingStatus: domain.FilingSingle,
		Allowances:   0,
		PayFrequency: domain.PayBiweekly,
		YTDGross:     decimal.Zero,
		YTDFICAWages: decimal.Zero,
		IsActive:     true,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s: got %s want %s", field, got, want)
}

func TestCalculate_ZeroGross(t *testing.T) {
	result, err := payroll.Calculate(decimal.Zero, singleBiweekly(), testConfig())
	require.NoError(t, err)

	assert.True(t, result.FederalWithholding.IsZero())
	assert.True(t, result.SocialSecurity.IsZero())
	assert.True(t, result.Medicare.IsZero())
	assert.True(t, result.FUTA.IsZero())
	assert.True(t, result.SUTA.IsZero())
	assert.True(t, result.NetPay.IsZero())
}

func TestCalculate_NegativeGross(t *testing.T) {
	_, err := payroll.Calculate(decimal.NewFromInt(-100), singleBiweekly(), testConfig())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestCalculate_SingleBiweekly(t *testing.T) {
	// $2,000 biweekly annualizes to $52,000. After the $15,000 standard
	// deduction, $37,000 is taxable: 10% of the first $11,925 plus 12% of the
	// rest gives $4,201.50 per year, $161.60 per period.
	gross := decimal.NewFromInt(2000)
	result, err := payroll.Calculate(gross, singleBiweekly(), testConfig())
	require.NoError(t, err)

	assertDecimal(t, "161.60", result.FederalWithholding, "federal")
	assertDecimal(t, "124.00", result.SocialSecurity, "social security")
	assertDecimal(t, "29.00", result.Medicare, "medicare")
	assertDecimal(t, "12.00", result.FUTA, "futa")
	assertDecimal(t, "54.00", result.SUTA, "suta")
	assertDecimal(t, "1685.40", result.NetPay, "net pay")
}

func TestCalculate_AllowancesShelterWages(t *testing.T) {
	withAllowances := singleBiweekly()
	withAllowances.Allowances = 2

	base, err := payroll.Calculate(decimal.NewFromInt(2000), singleBiweekly(), testConfig())
	require.NoError(t, err)
	sheltered, err := payroll.Calculate(decimal.NewFromInt(2000), withAllowances, testConfig())
	require.NoError(t, err)

	assert.True(t, sheltered.FederalWithholding.LessThan(base.FederalWithholding))
	assert.True(t, sheltered.SocialSecurity.Equal(base.SocialSecurity), "FICA is not sheltered by allowances")
}

func TestCalculate_SocialSecurityWageBaseCap(t *testing.T) {
	profile := singleBiweekly()
	profile.YTDFICAWages = decimal.NewFromInt(175000)

	// Only $1,100 of headroom remains under the $176,100 wage base.
	result, err := payroll.Calculate(decimal.NewFromInt(2000), profile, testConfig())
	require.NoError(t, err)

	assertDecimal(t, "68.20", result.SocialSecurity, "social security")
}

func TestCalculate_SocialSecurityExhausted(t *testing.T) {
	profile := singleBiweekly()
	profile.YTDFICAWages = decimal.NewFromInt(180000)

	result, err := payroll.Calculate(decimal.NewFromInt(2000), profile, testConfig())
	require.NoError(t, err)

	assert.True(t, result.SocialSecurity.IsZero())
}

func TestCalculate_MedicareSurtaxCrossingThreshold(t *testing.T) {
	profile := singleBiweekly()
	profile.YTDGross = decimal.NewFromInt(199000)

	// $2,000 of this $3,000 check sits above the $200,000 threshold:
	// 1.45% of $3,000 plus 0.9% of $2,000.
	result, err := payroll.Calculate(decimal.NewFromInt(3000), profile, testConfig())
	require.NoError(t, err)

	assertDecimal(t, "61.50", result.Medicare, "medicare")
}

func TestCalculate_MedicareSurtaxFullyAboveThreshold(t *testing.T) {
	profile := singleBiweekly()
	profile.YTDGross = decimal.NewFromInt(250000)

	result, err := payroll.Calculate(decimal.NewFromInt(1000), profile, testConfig())
	require.NoError(t, err)

	assertDecimal(t, "23.50", result.Medicare, "medicare")
}

func TestCalculate_UnemploymentWageBases(t *testing.T) {
	profile := singleBiweekly()
	profile.YTDGross = decimal.NewFromInt(6500)

	// FUTA headroom is $500 under the $7,000 base, SUTA headroom $2,500
	// under the $9,000 base.
	result, err := payroll.Calculate(decimal.NewFromInt(2000), profile, testConfig())
	require.NoError(t, err)

	assertDecimal(t, "3.00", result.FUTA, "futa")
	assertDecimal(t, "54.00", result.SUTA, "suta")
}

func TestCalculate_SUTARateOverride(t *testing.T) {
	profile := singleBiweekly()
	profile.SUTARate = decimal.RequireFromString("0.041")

	result, err := payroll.Calculate(decimal.NewFromInt(1000), profile, testConfig())
	require.NoError(t, err)

	assertDecimal(t, "41.00", result.SUTA, "suta")
}

func TestCalculate_UnknownFilingStatus(t *testing.T) {
	profile := singleBiweekly()
	profile.FilingStatus = domain.FilingStatus("QUALIFYING_WIDOW")

	_, err := payroll.Calculate(decimal.NewFromInt(1000), profile, testConfig())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filing status")
}

func TestCalculate_EmployerTaxesNotDeductedFromNet(t *testing.T) {
	result, err := payroll.Calculate(decimal.NewFromInt(2000), singleBiweekly(), testConfig())
	require.NoError(t, err)

	expectedNet := result.GrossPay.
		Sub(result.FederalWithholding).
		Sub(result.SocialSecurity).
		Sub(result.Medicare)
	assert.True(t, result.NetPay.Equal(expectedNet), "net pay must exclude employer-side FUTA/SUTA")
}
