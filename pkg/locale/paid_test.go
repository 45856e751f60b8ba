package locale

import "testing"

func TestParsePaid(t *testing.T) {
	cases := map[string]bool{
		"Sim":  true,
		"sim ": true,
		" SIM": true,
		"não":  false,
		"Não":  false,
		"NAO":  false,
		"":     false,
		"s":    false,
		"simm": false,
	}
	for in, want := range cases {
		if got := ParsePaid(in); got != want {
			t.Errorf("ParsePaid(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestFormatPaid(t *testing.T) {
	if FormatPaid(true) != "Sim" || FormatPaid(false) != "Não" {
		t.Errorf("unexpected labels: %q %q", FormatPaid(true), FormatPaid(false))
	}
}
