package export

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidDate = errors.New("invalid date")

const (
	LongDateLayout  = "January 2, 2006"
	ShortDateLayout = "Jan 2, 2006"
	DateTimeLayout  = "Jan 2, 2006, 3:04 PM"
	ISODateLayout   = "2006-01-02"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders amount as US dollars with thousands separators and two fraction digits,
// e.g. 1234.5 -> "$1,234.50" and -12 -> "-$12.00".
func FormatCurrency(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case math.IsInf(amount, 1):
		return "$∞"
	case math.IsInf(amount, -1):
		return "-$∞"
	}

	// Negative amounts keep their sign even when they round to zero.
	neg := amount < 0 || math.Signbit(amount)
	d := decimal.NewFromFloat(math.Abs(amount)).Round(2)

	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	out := "$" + groupThousands(whole) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatAmount renders amount with exactly two fraction digits and no symbol or grouping.
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatRate renders a fractional rate as a percentage number with one fraction digit (0.45 -> "45.0").
func FormatRate(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "0.0"
	}
	return decimal.NewFromFloat(rate).Mul(hundred).StringFixed(1)
}

// FormatPercentage is FormatRate with a trailing percent sign.
func FormatPercentage(rate float64) string {
	return FormatRate(rate) + "%"
}

// RoundCents rounds half away from zero to two fraction digits.
func RoundCents(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount
	}
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

func FormatLongDate(t time.Time) string  { return t.Format(LongDateLayout) }
func FormatShortDate(t time.Time) string { return t.Format(ShortDateLayout) }
func FormatDateTime(t time.Time) string  { return t.Format(DateTimeLayout) }

// ParseDate accepts an ISO calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ISODateLayout, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// FormatShortDateString formats an ISO date string in the short layout.
// Unparseable input is returned unchanged.
func FormatShortDateString(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return FormatShortDate(t)
}

// Cell formatters for Column.Format.

func CurrencyCell(v any) string {
	if f, ok := toFloat(v); ok {
		return FormatCurrency(f)
	}
	return stringify(v)
}

func AmountCell(v any) string {
	if f, ok := toFloat(v); ok {
		return FormatAmount(f)
	}
	return stringify(v)
}

func PercentageCell(v any) string {
	if f, ok := toFloat(v); ok {
		return FormatPercentage(f)
	}
	return stringify(v)
}

func DateCell(v any) string {
	switch x := v.(type) {
	case time.Time:
		return FormatShortDate(x)
	case *time.Time:
		if x == nil {
			return ""
		}
		return FormatShortDate(*x)
	case string:
		return FormatShortDateString(x)
	}
	return stringify(v)
}

func DateTimeCell(v any) string {
	switch x := v.(type) {
	case time.Time:
		return FormatDateTime(x)
	case *time.Time:
		if x == nil {
			return ""
		}
		return FormatDateTime(*x)
	}
	return stringify(v)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case decimal.Decimal:
		f, _ := x.Float64()
		return f, true
	}
	return 0, false
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
