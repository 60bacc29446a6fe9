package export

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatCurrency(1234.5))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "-$12.00", FormatCurrency(-12))
	assert.Equal(t, "$1,000,000.00", FormatCurrency(1_000_000))
	assert.Equal(t, "$999.99", FormatCurrency(999.99))
	assert.Equal(t, "$5.85", FormatCurrency(5.845))
	assert.Equal(t, "-$1,234.57", FormatCurrency(-1234.565))
}

func TestFormatCurrency_NegativeRoundingToZeroKeepsSign(t *testing.T) {
	assert.Equal(t, "-$0.00", FormatCurrency(-0.001))
	assert.Equal(t, "-$0.00", FormatCurrency(math.Copysign(0, -1)))
	assert.Equal(t, "$0.00", FormatCurrency(0.001))
}

func TestFormatRateAndPercentage(t *testing.T) {
	assert.Equal(t, "45.0", FormatRate(0.45))
	assert.Equal(t, "12.5%", FormatPercentage(0.125))
	assert.Equal(t, "0.0%", FormatPercentage(0))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.99", FormatAmount(12.99))
	assert.Equal(t, "100.00", FormatAmount(100))
}

func TestDateFormatting(t *testing.T) {
	d := time.Date(2024, 6, 15, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "June 15, 2024", FormatLongDate(d))
	assert.Equal(t, "Jun 15, 2024", FormatShortDate(d))
	assert.Equal(t, "Jun 15, 2024, 2:05 PM", FormatDateTime(d))
	assert.Equal(t, "Jun 15, 2024", FormatShortDateString("2024-06-15"))
	assert.Equal(t, "not a date", FormatShortDateString("not a date"))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-15T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Day())

	_, err = ParseDate("15/06/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
