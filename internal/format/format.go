package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultDecimals is the precision the calculator screen and the PDF use
// unless DECIMALS overrides it.
const DefaultDecimals = 0

const maxNameLen = 40

var (
	illegalName = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	spaceRun    = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
)

// Round rounds half away from zero at the given number of decimals.
// Non-finite values round to 0.
func Round(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow10(decimals)
	scaled := value * p
	if math.IsInf(p, 0) || math.IsInf(scaled, 0) {
		// no fractional digits left at this magnitude
		return value
	}
	return math.Round(scaled) / p
}

// Format renders value as a fixed-decimal string, e.g. Format(3.014, 2) = "3.01".
func Format(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	r := Round(value, decimals)
	if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		// also drops the sign of -0
		r = 0
	}
	return strconv.FormatFloat(r, 'f', decimals, 64)
}

// WithUnit is Format followed by the unit, if any.
func WithUnit(value float64, decimals int, unit string) string {
	s := Format(value, decimals)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// SafeName turns free text into a token usable in a file name.
func SafeName(text string) string {
	s := strings.TrimFunc(text, isSpace)
	s = illegalName.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, "_")
	if utf8.RuneCountInString(s) > maxNameLen {
		s = string([]rune(s)[:maxNameLen])
	}
	if s == "" {
		return "report"
	}
	return s
}

// isSpace matches the runes spaceRun collapses.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || r == '\uFEFF'
}
