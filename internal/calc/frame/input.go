package frame

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Coerce reads a free-text form value. Anything that is not a finite
// number, including the empty string, becomes 0.
func Coerce(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if base := intBase(s); base != 0 {
		// prefixed input is an integer only; "0x1p3" is not a number
		if strings.Contains(s, "_") {
			return 0
		}
		if v, err := strconv.ParseUint(s[2:], base, 64); err == nil {
			return float64(v)
		}
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Sanitize(v)
	}
	return 0
}

func intBase(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// FormValues holds raw form input keyed by field. JSON numbers keep their
// text form; booleans and null count as empty.
type FormValues map[string]string

func (f *FormValues) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	out := make(FormValues, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case json.Number:
			out[k] = t.String()
		default:
			out[k] = ""
		}
	}
	*f = out
	return nil
}

// ParseInputs coerces form values into Inputs. Unknown keys are ignored.
func ParseInputs(values FormValues) Inputs {
	var in Inputs
	for k, v := range values {
		in.Set(k, Coerce(v))
	}
	return in
}
