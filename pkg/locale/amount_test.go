package locale

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1.234,56", "1234.56", true},
		{"15,90", "15.9", true},
		{" 10 ", "10", true},
		{"1.000.000", "1000000", true},
		{"-5,50", "-5.5", true},
		{"", "0", true},
		{"   ", "0", true},
		{"abc", "0", false},
		{"R$ 10,00", "0", false},
		{"1,2,3", "0", false},
		{"Infinity", "0", false},
		{"1e400", "0", false},
		{"-1e400", "0", false},
		{"1e2", "100", true},
	}
	for _, tc := range cases {
		got, ok := LookupAmount(tc.in)
		want := decimal.RequireFromString(tc.out)
		if !got.Equal(want) || ok != tc.ok {
			t.Errorf("%q: expected %s (ok=%v), got %s (ok=%v)", tc.in, want, tc.ok, got, ok)
		}
		if parsed := ParseAmount(tc.in); !parsed.Equal(want) {
			t.Errorf("ParseAmount(%q): expected %s, got %s", tc.in, want, parsed)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"0", "R$ 0,00"},
		{"15.9", "R$ 15,90"},
		{"1234.56", "R$ 1.234,56"},
		{"1000000", "R$ 1.000.000,00"},
		{"123456.789", "R$ 123.456,79"},
		{"-42.5", "-R$ 42,50"},
	}
	for _, tc := range cases {
		if got := FormatAmount(decimal.RequireFromString(tc.in)); got != tc.out {
			t.Errorf("%s: expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestFormatAmountRoundTrip(t *testing.T) {
	for _, in := range []string{"1.234,56", "0,01", "999,99", "12.345.678,90"} {
		amount := ParseAmount(in)
		formatted := FormatAmount(amount)
		if formatted != "R$ "+in {
			t.Errorf("%q: expected round trip, got %q", in, formatted)
		}
	}
}
