package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects how the property value field is presented
type Mode int

const (
	// ModeThousands keeps integer reais and groups them with dots
	ModeThousands Mode = iota
	// ModeCents reads the digits as cents and shows two fraction digits
	ModeCents
)

// ParseMode maps a config value to a Mode, defaulting to ModeThousands
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "cents") {
		return ModeCents
	}
	return ModeThousands
}

func (m Mode) String() string {
	if m == ModeCents {
		return "cents"
	}
	return "thousands"
}

// ParseDigits strips every character that is not an ASCII digit
func ParseDigits(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			builder.WriteByte(c)
		}
	}
	return builder.String()
}

// Truncate caps a digit string at max characters
func Truncate(digits string, max int) string {
	if max >= 0 && len(digits) > max {
		return digits[:max]
	}
	return digits
}

// FormatThousands inserts a dot every three digits from the right
func FormatThousands(digits string) string {
	digits = ParseDigits(digits)
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var builder strings.Builder
	builder.Grow(n + n/3)
	lead := n % 3
	if lead > 0 {
		builder.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if builder.Len() > 0 {
			builder.WriteByte('.')
		}
		builder.WriteString(digits[i : i+3])
	}
	return builder.String()
}

// ToDecimalBRL reads the digits as cents and renders them as "1.234,56".
// Returns an empty string when nothing numeric remains.
func ToDecimalBRL(digitsAsCents string) string {
	digits := ParseDigits(digitsAsCents)
	if digits == "" {
		return ""
	}
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return ""
	}
	return formatDecimalBRL(cents.Shift(-2))
}

// FormatCurrencyDisplay renders an amount as "R$ 1.234,50", rounding half away
// from zero to the cent. NaN and infinities render as zero.
func FormatCurrencyDisplay(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsNegative() {
		return "-R$ " + formatDecimalBRL(d.Neg())
	}
	return "R$ " + formatDecimalBRL(d)
}

// DigitsToAmount converts a stored property value into reais for the given mode
func DigitsToAmount(digits string, mode Mode) float64 {
	digits = ParseDigits(digits)
	if digits == "" {
		return 0
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0
	}
	if mode == ModeCents {
		d = d.Shift(-2)
	}
	f, _ := d.Float64()
	return f
}

// formatDecimalBRL renders a non-negative decimal with dot grouping and comma decimals
func formatDecimalBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	intPart, fracPart := fixed, "00"
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}
	return FormatThousands(intPart) + "," + fracPart
}
