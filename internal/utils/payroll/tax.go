package payroll

import (
	"fmt"

	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Annual FICA parameters (2025 tax year).
var (
	SocialSecurityRate     = decimal.RequireFromString("0.062")
	SocialSecurityWageBase = decimal.NewFromInt(176100)
	MedicareRate           = decimal.RequireFromString("0.0145")
	MedicareSurtaxRate     = decimal.RequireFromString("0.009")
	MedicareSurtaxFloor    = decimal.NewFromInt(200000)
)

// Config carries the employer-side unemployment tax parameters. FUTA/SUTA
// rates and wage bases vary by state and year, so they come from
// configuration rather than constants.
type Config struct {
	FUTARate     decimal.Decimal
	FUTAWageBase decimal.Decimal
	SUTARate     decimal.Decimal
	SUTAWageBase decimal.Decimal
}

// bracket is one marginal federal rate band over annualized taxable wages.
// UpTo is the upper bound of the band; the last band has no bound.
type bracket struct {
	UpTo decimal.Decimal // zero value means unbounded
	Rate decimal.Decimal
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Federal percentage-method tables, annualized (2025). Standard deduction is
// applied before the bands; each legacy W-4 allowance shelters a further
// fixed amount.
var (
	allowanceAmount = decimal.NewFromInt(4300)

	standardDeduction = map[domain.FilingStatus]decimal.Decimal{
		domain.FilingSingle:          decimal.NewFromInt(15000),
		domain.FilingMarried:         decimal.NewFromInt(30000),
		domain.FilingHeadOfHousehold: decimal.NewFromInt(22500),
	}

	federalBrackets = map[domain.FilingStatus][]bracket{
		domain.FilingSingle: {
			{UpTo: d("11925"), Rate: d("0.10")},
			{UpTo: d("48475"), Rate: d("0.12")},
			{UpTo: d("103350"), Rate: d("0.22")},
			{UpTo: d("197300"), Rate: d("0.24")},
			{UpTo: d("250525"), Rate: d("0.32")},
			{UpTo: d("626350"), Rate: d("0.35")},
			{Rate: d("0.37")},
		},
		domain.FilingMarried: {
			{UpTo: d("23850"), Rate: d("0.10")},
			{UpTo: d("96950"), Rate: d("0.12")},
			{UpTo: d("206700"), Rate: d("0.22")},
			{UpTo: d("394600"), Rate: d("0.24")},
			{UpTo: d("501050"), Rate: d("0.32")},
			{UpTo: d("751600"), Rate: d("0.35")},
			{Rate: d("0.37")},
		},
		domain.FilingHeadOfHousehold: {
			{UpTo: d("17000"), Rate: d("0.10")},
			{UpTo: d("64850"), Rate: d("0.12")},
			{UpTo: d("103350"), Rate: d("0.22")},
			{UpTo: d("197300"), Rate: d("0.24")},
			{UpTo: d("250525"), Rate: d("0.32")},
			{UpTo: d("626350"), Rate: d("0.35")},
			{Rate: d("0.37")},
		},
	}
)

// annualFederalTax applies the marginal bands progressively to annualized
// taxable wages. No rounding happens here.
func annualFederalTax(taxable decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	brackets, ok := federalBrackets[status]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown filing status '%s'", status)
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if b.UpTo.IsZero() || taxable.LessThanOrEqual(b.UpTo) {
			tax = tax.Add(taxable.Sub(lower).Mul(b.Rate))
			return tax, nil
		}
		tax = tax.Add(b.UpTo.Sub(lower).Mul(b.Rate))
		lower = b.UpTo
	}
	return tax, nil
}

// cappedWages returns the portion of gross that still fits under an annual
// wage base given year-to-date wages already taxed.
func cappedWages(gross, ytd, base decimal.Decimal) decimal.Decimal {
	headroom := base.Sub(ytd)
	if headroom.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if gross.LessThan(headroom) {
		return gross
	}
	return headroom
}

// Calculate computes all withholding components for a single paycheck. It is
// stateless: YTD figures come in on the profile and the caller is responsible
// for advancing them after the pay run. All components are banker's-rounded
// to cents at the final step only, so repeated calls across a pay run do not
// accumulate rounding drift.
func Calculate(gross decimal.Decimal, profile domain.PayrollProfile, cfg Config) (domain.TaxWithholding, error) {
	if gross.IsNegative() {
		return domain.TaxWithholding{}, fmt.Errorf("gross pay must not be negative, got %s", gross.String())
	}

	zero := decimal.Zero
	result := domain.TaxWithholding{
		GrossPay:           gross,
		FederalWithholding: zero,
		SocialSecurity:     zero,
		Medicare:           zero,
		FUTA:               zero,
		SUTA:               zero,
		NetPay:             gross,
	}
	if gross.IsZero() {
		return result, nil
	}

	periods := decimal.NewFromInt(profile.PayFrequency.PeriodsPerYear())

	// Federal withholding: annualize, shelter deductions, apply marginal
	// bands, then bring back to a per-period amount.
	annualWages := gross.Mul(periods)
	sheltered := standardDeduction[profile.FilingStatus].
		Add(allowanceAmount.Mul(decimal.NewFromInt(int64(profile.Allowances))))
	taxable := annualWages.Sub(sheltered)
	if taxable.IsNegative() {
		taxable = zero
	}
	annualTax, err := annualFederalTax(taxable, profile.FilingStatus)
	if err != nil {
		return domain.TaxWithholding{}, err
	}
	federal := annualTax.Div(periods)

	// Social Security: 6.2% of gross, capped so cumulative taxed wages never
	// exceed the annual wage base.
	ssWages := cappedWages(gross, profile.YTDFICAWages, SocialSecurityWageBase)
	socialSecurity := ssWages.Mul(SocialSecurityRate)

	// Medicare: 1.45% uncapped, plus 0.9% on only the excess above the
	// high-earner threshold.
	medicare := gross.Mul(MedicareRate)
	surtaxStart := MedicareSurtaxFloor
	if profile.YTDGross.GreaterThan(surtaxStart) {
		surtaxStart = profile.YTDGross
	}
	surtaxWages := profile.YTDGross.Add(gross).Sub(surtaxStart)
	if surtaxWages.GreaterThan(zero) {
		medicare = medicare.Add(surtaxWages.Mul(MedicareSurtaxRate))
	}

	// Employer-side unemployment taxes against their configured wage bases.
	futa := cappedWages(gross, profile.YTDGross, cfg.FUTAWageBase).Mul(cfg.FUTARate)
	sutaRate := cfg.SUTARate
	if !profile.SUTARate.IsZero() {
		sutaRate = profile.SUTARate
	}
	suta := cappedWages(gross, profile.YTDGross, cfg.SUTAWageBase).Mul(sutaRate)

	result.FederalWithholding = federal.RoundBank(2)
	result.SocialSecurity = socialSecurity.RoundBank(2)
	result.Medicare = medicare.RoundBank(2)
	result.FUTA = futa.RoundBank(2)
	result.SUTA = suta.RoundBank(2)
	result.NetPay = gross.Sub(result.FederalWithholding).
		Sub(result.SocialSecurity).
		Sub(result.Medicare)

	return result, nil
}
