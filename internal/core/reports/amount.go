// Package reports contains the pure report builders behind the financial
// report endpoints: trial balance, balance sheet, profit & loss and AR
// aging. Builders are synchronous functions over in-memory snapshots
// already fetched from the ledger layer; they perform no I/O, read no
// clocks and hold no state, so identical inputs always produce identical
// reports.
package reports

import (
	"fmt"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a money value from its wire form: a decimal string
// with at most two fractional digits. Anything else fails with
// apperrors.ErrInvalidAmount; amounts are never coerced to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a valid decimal", apperrors.ErrInvalidAmount, s)
	}
	if d.Exponent() < -2 {
		return decimal.Decimal{}, fmt.Errorf("%w: %q has more than 2 fractional digits", apperrors.ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatAmount renders a money value with exactly two fractional digits and
// no currency symbol. The presentation layer adds symbols.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
