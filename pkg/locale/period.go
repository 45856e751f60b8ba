package locale

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var monthsByName = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// ParsePeriod converts a label such as "Março, 2024" into the first day of
// that month (UTC). Labels that cannot be read fall back to the first day of
// now's month.
func ParsePeriod(text string, now time.Time) time.Time {
	if t, ok := LookupPeriod(text); ok {
		return t
	}
	return MonthOf(now)
}

// LookupPeriod is ParsePeriod without the fallback.
func LookupPeriod(text string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(text), ",")
	if len(parts) < 2 {
		return time.Time{}, false
	}

	month, ok := monthsByName[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// FormatPeriod renders the label for t's month, e.g. "Outubro, 2025".
func FormatPeriod(t time.Time) string {
	return fmt.Sprintf("%s, %d", monthNames[t.Month()-1], t.Year())
}

// MonthOf returns the first day of t's month in UTC, keeping t's calendar
// date rather than converting the instant.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
