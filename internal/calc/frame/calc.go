package frame

import "math"

const (
	KeySize     = "size"
	KeyHeightIn = "heightIn"
	KeyWidthIn  = "widthIn"
	KeyH        = "H"
	KeyW        = "W"
)

const (
	pi = 3.14 // shop value, not math.Pi

	roundMargin   = 8.0
	inchToMM      = 25.4
	inchesPerFoot = 12.0
	rectDeduction = 120.0
	rectOffset    = 170.0
	rectJoint     = 94.2
)

type Inputs struct {
	Size     float64 `json:"size"`
	HeightIn float64 `json:"heightIn"`
	WidthIn  float64 `json:"widthIn"`
	H        float64 `json:"H"`
	W        float64 `json:"W"`
}

// Row is one output line. Unit is empty or "ft".
type Row struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Sanitize replaces NaN and infinities with 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (in Inputs) sanitized() Inputs {
	return Inputs{
		Size:     Sanitize(in.Size),
		HeightIn: Sanitize(in.HeightIn),
		WidthIn:  Sanitize(in.WidthIn),
		H:        Sanitize(in.H),
		W:        Sanitize(in.W),
	}
}

// Value returns the input stored under a field key.
func (in Inputs) Value(key string) float64 {
	switch key {
	case KeySize:
		return in.Size
	case KeyHeightIn:
		return in.HeightIn
	case KeyWidthIn:
		return in.WidthIn
	case KeyH:
		return in.H
	case KeyW:
		return in.W
	}
	return 0
}

// Set stores v under a field key; unknown keys are ignored.
func (in *Inputs) Set(key string, v float64) {
	v = Sanitize(v)
	switch key {
	case KeySize:
		in.Size = v
	case KeyHeightIn:
		in.HeightIn = v
	case KeyWidthIn:
		in.WidthIn = v
	case KeyH:
		in.H = v
	case KeyW:
		in.W = v
	}
}

// Echo lists the inputs the mode reads, labelled as on the form.
func (in Inputs) Echo(m Mode) []Row {
	in = in.sanitized()
	fields := m.Fields()
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, Row{Label: f.Label, Value: in.Value(f.Key)})
	}
	return rows
}

// Evaluate runs the formula of mode m. It never fails: non-finite inputs
// count as 0, an overflowing result is reported as 0 and an unknown mode
// yields no rows.
func Evaluate(m Mode, in Inputs) []Row {
	in = in.sanitized()
	var rows []Row
	switch m {
	case ModeRound:
		rows = round(in.Size)
	case ModeSquareRect:
		rows = squareRect(in.HeightIn, in.WidthIn)
	case ModeCapsule:
		rows = capsule(in.H, in.W)
	case ModeHalfCapsule:
		rows = halfCapsule(in.H, in.W)
	default:
		return []Row{}
	}
	for i := range rows {
		rows[i].Value = Sanitize(rows[i].Value)
	}
	return rows
}

// The float64 conversions below keep each product rounded on its own, so the
// compiler cannot fuse it into a following add and results match on every GOARCH.

func round(size float64) []Row {
	totalSize := float64(size * pi)
	finalSize := totalSize + roundMargin
	foot := finalSize / inchesPerFoot

	return []Row{
		{Label: "TOTAL SIZE", Value: totalSize},
		{Label: "MARGIN", Value: roundMargin},
		{Label: "FINAL SIZE", Value: finalSize},
		{Label: "FOOT", Value: foot, Unit: "ft"},
	}
}

func squareRect(heightIn, widthIn float64) []Row {
	heightMM := float64(heightIn * inchToMM)
	widthMM := float64(widthIn * inchToMM)

	finalHeightMM := heightMM - rectDeduction
	finalWidthMM := widthMM - rectDeduction

	takingMargin := finalHeightMM / 2
	mark1 := takingMargin + rectOffset + rectJoint
	mark2 := mark1 + finalWidthMM + rectJoint
	mark3 := mark2 + finalHeightMM + rectJoint
	mark4 := mark3 + finalWidthMM + rectJoint

	totalRawFt := float64((heightIn+widthIn)*2) / inchesPerFoot

	return []Row{
		{Label: "1ST MARK", Value: mark1},
		{Label: "2ND MARK", Value: mark2},
		{Label: "3RD MARK", Value: mark3},
		{Label: "4TH MARK", Value: mark4},
		{Label: "TOTAL RAW MATERIAL", Value: totalRawFt, Unit: "ft"},
	}
}

func capsule(h, w float64) []Row {
	net := h - w
	upperBottom := float64(w*pi) / 2
	totalRawFt := float64((h+w)*2) / inchesPerFoot

	return []Row{
		{Label: "FIRST MARKING", Value: net / 2},
		{Label: "SECOND MARKING", Value: upperBottom},
		{Label: "THIRD MARKING", Value: net},
		{Label: "FOURTH MARKING", Value: upperBottom},
		{Label: "TOTAL RAW MATERIAL", Value: totalRawFt, Unit: "ft"},
	}
}

func halfCapsule(h, w float64) []Row {
	net := h - w/2
	upperBottom := float64(w*pi) / 2

	first := net
	second := upperBottom
	third := first

	rawMaterialFt := (first + second + third) / inchesPerFoot
	bottomMaterialFt := w / inchesPerFoot
	totalFt := rawMaterialFt + bottomMaterialFt

	return []Row{
		{Label: "FIRST MARKING", Value: first},
		{Label: "SECOND MARKING", Value: second},
		{Label: "THIRD MARKING", Value: third},
		{Label: "RAW MATERIAL", Value: rawMaterialFt, Unit: "ft"},
		{Label: "BOTTOM MATERIAL", Value: bottomMaterialFt, Unit: "ft"},
		{Label: "TOTAL", Value: totalFt, Unit: "ft"},
	}
}
