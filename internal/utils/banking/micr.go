package banking

import (
	"fmt"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
)

// E-13B delimiter symbols. The transit symbol brackets the routing number,
// the on-us symbol terminates the account and auxiliary fields.
const (
	TransitSymbol = "⑆" // ⑆
	OnUsSymbol    = "⑈" // ⑈
)

const (
	routingNumberLength = 9
	checkNumberWidth    = 8
	accountNumberWidth  = 12
	maxAccountNumberLen = 17
)

// ValidateRoutingNumber checks that the routing number is nine digits and
// passes the ABA checksum: 3*(d1+d4+d7) + 7*(d2+d5+d8) + (d3+d6+d9) mod 10 == 0.
func ValidateRoutingNumber(routing string) error {
	if len(routing) != routingNumberLength {
		return fmt.Errorf("%w: routing number must be %d digits, got %d", apperrors.ErrValidation, routingNumberLength, len(routing))
	}
	weights := [routingNumberLength]int{3, 7, 1, 3, 7, 1, 3, 7, 1}
	sum := 0
	for i, c := range routing {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: routing number must be numeric, got %q", apperrors.ErrValidation, routing)
		}
		sum += int(c-'0') * weights[i]
	}
	if sum%10 != 0 {
		return fmt.Errorf("%w: routing number %s fails checksum", apperrors.ErrValidation, routing)
	}
	return nil
}

// FormatMICRLine renders the fixed-width MICR line for a check:
// auxiliary on-us (check number), transit (routing), on-us (account).
// The routing number is checksum-validated before any formatting.
func FormatMICRLine(routing, account string, checkNumber int64) (string, error) {
	if err := ValidateRoutingNumber(routing); err != nil {
		return "", err
	}
	if account == "" || len(account) > maxAccountNumberLen {
		return "", fmt.Errorf("%w: account number must be 1-%d characters", apperrors.ErrValidation, maxAccountNumberLen)
	}
	for _, c := range account {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: account number must be numeric", apperrors.ErrValidation)
		}
	}
	if checkNumber <= 0 {
		return "", fmt.Errorf("%w: check number must be positive", apperrors.ErrValidation)
	}
	if checkNumber >= 1e8 {
		return "", fmt.Errorf("%w: check number %d exceeds %d digits", apperrors.ErrFormatOverflow, checkNumber, checkNumberWidth)
	}

	return fmt.Sprintf("%s%0*d%s %s%s%s %*s%s",
		OnUsSymbol, checkNumberWidth, checkNumber, OnUsSymbol,
		TransitSymbol, routing, TransitSymbol,
		accountNumberWidth, account, OnUsSymbol,
	), nil
}
