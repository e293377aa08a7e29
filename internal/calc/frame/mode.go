package frame

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("unknown mode")

// Mode selects the sheet: which formula runs and which inputs it reads.
type Mode int

const (
	ModeRound Mode = iota + 1
	ModeSquareRect
	ModeCapsule
	ModeHalfCapsule
)

// Field is one input box of a sheet.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var modes = []Mode{ModeRound, ModeSquareRect, ModeCapsule, ModeHalfCapsule}

// Modes lists the sheets in the order the selector shows them.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

func (m Mode) String() string {
	switch m {
	case ModeRound:
		return "ROUND"
	case ModeSquareRect:
		return "SQUARE_RECT"
	case ModeCapsule:
		return "CAPSULE"
	case ModeHalfCapsule:
		return "HALF_CAPSULE"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Label is the human name printed on screen and in the PDF.
func (m Mode) Label() string {
	switch m {
	case ModeRound:
		return "ROUND"
	case ModeSquareRect:
		return "Square + Rectangle"
	case ModeCapsule:
		return "CAPSULE"
	case ModeHalfCapsule:
		return "HALF CAPSULE"
	default:
		return m.String()
	}
}

// Fields returns the inputs the mode reads, in form order.
func (m Mode) Fields() []Field {
	switch m {
	case ModeRound:
		return []Field{{Key: KeySize, Label: "Size"}}
	case ModeSquareRect:
		return []Field{{Key: KeyHeightIn, Label: "Height"}, {Key: KeyWidthIn, Label: "Width"}}
	case ModeCapsule, ModeHalfCapsule:
		return []Field{{Key: KeyH, Label: "H"}, {Key: KeyW, Label: "W"}}
	default:
		return nil
	}
}

func (m Mode) Valid() bool {
	return m >= ModeRound && m <= ModeHalfCapsule
}

// ParseMode accepts the mode names case-insensitively.
func ParseMode(s string) (Mode, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for _, m := range modes {
		if m.String() == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
