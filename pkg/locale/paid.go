package locale

import "strings"

// ParsePaid reports whether a payment flag reads "sim", ignoring case and
// surrounding whitespace.
func ParsePaid(text string) bool {
	return strings.ToLower(strings.TrimSpace(text)) == "sim"
}

// FormatPaid is the display form of a payment flag.
func FormatPaid(paid bool) string {
	if paid {
		return "Sim"
	}
	return "Não"
}
