package format

import (
	"math"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"trailing zeros kept", 3.014, 2, "3.01"},
		{"pads decimals", 5, 3, "5.000"},
		{"half rounds away from zero", 2.5, 0, "3"},
		{"negative half rounds away from zero", -2.5, 0, "-3"},
		{"float product lands on half", 2.005, 2, "2.01"},
		{"float product below half", 1.005, 2, "1.00"},
		{"foot of round 18", 5.376666666666668, 4, "5.3767"},
		{"default precision", 64.52, DefaultDecimals, "65"},
		{"negative decimals treated as zero", 7.6, -2, "8"},
		{"negative zero has no sign", -0.0001, 2, "0.00"},
		{"nan", math.NaN(), 2, "0.00"},
		{"positive infinity", math.Inf(1), 0, "0"},
		{"negative infinity", math.Inf(-1), 1, "0.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.value, tc.decimals); got != tc.want {
				t.Fatalf("Format(%v, %d) = %q, want %q", tc.value, tc.decimals, got, tc.want)
			}
		})
	}
}

func TestFormatNeverPrintsNonFinite(t *testing.T) {
	cases := []struct {
		name     string
		value    float64
		decimals int
		suffix   string
		digits   int
	}{
		{"scaled value overflows", 1e307, 2, ".00", 2},
		{"near max float", 1.7e308, 1, ".0", 1},
		{"zero with huge precision", 0, 400, "", 400},
		{"pow10 overflows", 5, 320, "", 320},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Format(tc.value, tc.decimals)
			if strings.Contains(got, "Inf") || strings.Contains(got, "NaN") {
				t.Fatalf("Format(%v, %d) = %q", tc.value, tc.decimals, got)
			}
			dot := strings.IndexByte(got, '.')
			if dot < 0 || len(got)-dot-1 != tc.digits || !strings.HasSuffix(got, tc.suffix) {
				t.Fatalf("Format(%v, %d) = %q, want %d decimals", tc.value, tc.decimals, got, tc.digits)
			}
		})
	}
	if got := Format(5, 320); !strings.HasPrefix(got, "5.000") {
		t.Fatalf("unexpected %q", got)
	}
	if got := Round(1e307, 2); got != 1e307 {
		t.Fatalf("Round(1e307, 2) = %v, want value unchanged", got)
	}
}

func TestRoundNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Round(v, 2); got != 0 {
			t.Fatalf("Round(%v) = %v, want 0", v, got)
		}
	}
}

func TestWithUnit(t *testing.T) {
	if got := WithUnit(9.666666, 2, "ft"); got != "9.67 ft" {
		t.Fatalf("unexpected %q", got)
	}
	if got := WithUnit(34.54, 1, ""); got != "34.5" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSafeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`  My "Report"/v1  `, "My_Reportv1"},
		{"Rahul Sharma", "Rahul_Sharma"},
		{"a   b\t\tc", "a_bc"},
		{"a 　 b", "a_b"},
		{`<>:"/\|?*`, "report"},
		{"   ", "report"},
		{"", "report"},
		{"Square + Rectangle", "Square_+_Rectangle"},
		{"\uFEFFname", "name"},
		{"\u00A0 Rahul\u2003", "Rahul"},
	}
	for _, tc := range cases {
		if got := SafeName(tc.in); got != tc.want {
			t.Fatalf("SafeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSafeNameTruncates(t *testing.T) {
	got := SafeName(strings.Repeat("x", 55))
	if len(got) != 40 {
		t.Fatalf("expected 40 chars, got %d", len(got))
	}
	got = SafeName(strings.Repeat("é", 45))
	if n := len([]rune(got)); n != 40 {
		t.Fatalf("expected 40 runes, got %d", n)
	}
}
