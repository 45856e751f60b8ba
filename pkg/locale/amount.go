package locale

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a Brazilian formatted number ("1.234,56") into a
// decimal. Blank or unparseable input yields zero.
func ParseAmount(text string) decimal.Decimal {
	amount, _ := LookupAmount(text)
	return amount
}

// LookupAmount is ParseAmount with an ok flag. Blank input is ok and zero;
// ok is false only when non-blank text could not be parsed.
func LookupAmount(text string) (decimal.Decimal, bool) {
	valueStr := strings.TrimSpace(text)
	if valueStr == "" {
		return decimal.Zero, true
	}
	valueStr = strings.ReplaceAll(valueStr, ".", "")  // Remove thousand separators
	valueStr = strings.Replace(valueStr, ",", ".", 1) // Convert decimal separator

	amount, err := decimal.NewFromString(valueStr)
	if err != nil {
		return decimal.Zero, false
	}
	// exponents past float64 range are not finite numbers
	if math.IsInf(amount.InexactFloat64(), 0) {
		return decimal.Zero, false
	}
	return amount, true
}

// FormatAmount renders an amount as Brazilian Real, e.g. "R$ 1.234,56".
func FormatAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "R$ " + b.String() + "," + fracPart
}
