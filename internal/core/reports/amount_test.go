package reports_test

import (
	"testing"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_Valid(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"0", "0.00"},
		{"100", "100.00"},
		{"100.5", "100.50"},
		{"100.50", "100.50"},
		{"-0.01", "-0.01"},
		{"-1799.50", "-1799.50"},
	}

	for _, tc := range cases {
		d, err := reports.ParseAmount(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, reports.FormatAmount(d), "input %q", tc.input)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"12.345",   // three fractional digits
		"0.001",    // sub-cent
		"1,000.00", // grouping separators are not part of the wire format
		"$5.00",
	}

	for _, input := range cases {
		_, err := reports.ParseAmount(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "input %q", input)
	}
}

func TestFormatAmount_AlwaysTwoDecimals(t *testing.T) {
	assert.Equal(t, "0.00", reports.FormatAmount(decimal.Zero))
	assert.Equal(t, "5.00", reports.FormatAmount(decimal.NewFromInt(5)))
	assert.Equal(t, "-500.00", reports.FormatAmount(decimal.NewFromInt(-500)))
	assert.Equal(t, "1799.50", reports.FormatAmount(decimal.RequireFromString("1799.5")))
}
