package locale

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL and filesystem safe key from a display name:
// "  João Câmara " becomes "joao-camara".
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, strings.ToLower(strings.TrimSpace(text)))
	result = nonAlphanumericRegex.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
