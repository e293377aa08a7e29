package report

import (
	"fmt"
	"io"
	"time"

	"GlassFrame/internal/calc/frame"
	"GlassFrame/internal/format"

	"github.com/phpdave11/gofpdf"
)

const Title = "SSG Glass Frame Calculator"

// Sheet is everything printed on one report page.
type Sheet struct {
	Mode      frame.Mode
	Name      string
	Inputs    []frame.Row
	Outputs   []frame.Row
	Decimals  int
	Generated time.Time
}

func NewSheet(mode frame.Mode, name string, in frame.Inputs, decimals int, now time.Time) Sheet {
	return Sheet{
		Mode:      mode,
		Name:      name,
		Inputs:    in.Echo(mode),
		Outputs:   frame.Evaluate(mode, in),
		Decimals:  decimals,
		Generated: now,
	}
}

// FileName is "<name>_<sheet label>.pdf" with both parts made file-safe.
func FileName(name string, mode frame.Mode) string {
	return fmt.Sprintf("%s_%s.pdf", format.SafeName(name), format.SafeName(mode.Label()))
}

type rgb struct{ r, g, b int }

type tableStyle struct {
	rowHeight      float64
	fontSize       float64
	headerFontSize float64
	colSplit       float64
	headerFill     rgb
	rowFillA       rgb
	rowFillB       rgb
	border         rgb
}

var defaultTable = tableStyle{
	rowHeight:      14,
	fontSize:       14,
	headerFontSize: 15,
	colSplit:       0.64,
	headerFill:     rgb{255, 230, 109},
	rowFillA:       rgb{255, 253, 242},
	rowFillB:       rgb{255, 255, 255},
	border:         rgb{40, 40, 40},
}

const pageMargin = 14.0

// Render writes the one-page PDF for s.
func Render(w io.Writer, s Sheet) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetCreationDate(s.Generated)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(pageMargin, 18, Title)

	pdf.SetFont("Helvetica", "", 13)
	pdf.Text(pageMargin, 28, tr("Sheet: "+s.Mode.Label()))
	pdf.Text(pageMargin, 36, tr("Name: "+s.Name))
	pdf.Text(pageMargin, 44, "Date: "+s.Generated.Format("2006-01-02 15:04:05"))

	pdf.SetLineWidth(0.4)
	pdf.Line(pageMargin, 49, pageW-pageMargin, 49)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageMargin, 60, "Inputs")

	pdf.SetFont("Helvetica", "", 14)
	y := 70.0
	for _, in := range s.Inputs {
		pdf.Text(pageMargin, y, fmt.Sprintf("%s: %s", in.Label, format.Format(in.Value, s.Decimals)))
		y += 9
	}
	y += 6

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageMargin, y, "Outputs")
	y += 10

	st := defaultTable
	needed := float64(len(s.Outputs)+1)*st.rowHeight + 8
	if y+needed > pageH-pageMargin {
		pdf.AddPage()
		y = 20
	}
	drawTable(pdf, pageMargin, y, pageW-2*pageMargin, s.Outputs, s.Decimals, st)

	return pdf.Output(w)
}

func drawTable(pdf *gofpdf.Fpdf, x, y, width float64, rows []frame.Row, decimals int, st tableStyle) float64 {
	leftW := width * st.colSplit
	rightW := width - leftW
	h := st.rowHeight

	pdf.SetDrawColor(st.border.r, st.border.g, st.border.b)
	pdf.SetLineWidth(0.4)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFillColor(st.headerFill.r, st.headerFill.g, st.headerFill.b)
	pdf.Rect(x, y, leftW, h, "FD")
	pdf.Rect(x+leftW, y, rightW, h, "FD")

	pdf.SetFont("Helvetica", "B", st.headerFontSize)
	pdf.Text(x+4, y+h-5, "Output")
	rightText(pdf, x+width-4, y+h-5, "Value")

	y += h
	for i, r := range rows {
		fill := st.rowFillA
		if i%2 == 1 {
			fill = st.rowFillB
		}
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		pdf.Rect(x, y, leftW, h, "FD")
		pdf.Rect(x+leftW, y, rightW, h, "FD")

		pdf.SetFont("Helvetica", "", st.fontSize)
		lines := pdf.SplitText(r.Label, leftW-8)
		if len(lines) > 2 {
			lines = lines[:2]
		}
		lineH := st.fontSize * 25.4 / 72 * 1.15
		ty := y + h - 5 - float64(len(lines)-1)*lineH
		for _, l := range lines {
			pdf.Text(x+4, ty, l)
			ty += lineH
		}

		pdf.SetFont("Helvetica", "B", st.fontSize)
		rightText(pdf, x+width-4, y+h-5, format.WithUnit(r.Value, decimals, r.Unit))

		y += h
	}
	return y
}

func rightText(pdf *gofpdf.Fpdf, right, y float64, s string) {
	pdf.Text(right-pdf.GetStringWidth(s), y, s)
}
