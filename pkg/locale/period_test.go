package locale

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	now := time.Date(2025, time.October, 15, 13, 45, 0, 0, time.UTC)
	fallback := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"Março, 2024", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"Marco, 2024", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"MARÇO,2024", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"  janeiro ,  2023 ", time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"Dezembro, 2022", time.Date(2022, time.December, 1, 0, 0, 0, 0, time.UTC), true},
		{"Blah, 2024", fallback, false},
		{"Abril, vinte", fallback, false},
		{"Abril, 2024.5", fallback, false},
		{"Abril", fallback, false},
		{"Abril,", fallback, false},
		{"", fallback, false},
	}
	for _, tc := range cases {
		if got := ParsePeriod(tc.in, now); !got.Equal(tc.want) {
			t.Errorf("ParsePeriod(%q): expected %v, got %v", tc.in, tc.want, got)
		}
		if _, ok := LookupPeriod(tc.in); ok != tc.ok {
			t.Errorf("LookupPeriod(%q): expected ok=%v, got %v", tc.in, tc.ok, ok)
		}
	}
}

func TestFormatPeriod(t *testing.T) {
	cases := map[string]time.Time{
		"Outubro, 2025": time.Date(2025, time.October, 31, 23, 0, 0, 0, time.UTC),
		"Março, 2024":   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		"Janeiro, 2000": time.Date(2000, time.January, 10, 0, 0, 0, 0, time.Local),
	}
	for want, in := range cases {
		if got := FormatPeriod(in); got != want {
			t.Errorf("FormatPeriod(%v): expected %q, got %q", in, want, got)
		}
		if parsed, ok := LookupPeriod(want); !ok || !parsed.Equal(MonthOf(in)) {
			t.Errorf("%q did not round trip: %v", want, parsed)
		}
	}
}
