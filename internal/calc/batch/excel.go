package batch

import (
	"errors"
	"io"
	"strings"

	"GlassFrame/internal/calc/frame"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("empty sheet")

// Import reads the first sheet of an xlsx workbook. The header row is
// skipped; every other row is "mode, a, b" where a and b are the mode's
// fields in form order. Rows that are too short or name an unknown mode
// are counted in Skipped.
func Import(r io.Reader, decimals int) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, err
	}
	if len(rows) < 2 {
		return Result{}, ErrEmptySheet
	}

	out := Result{Results: []frame.Result{}}
	for _, row := range rows[1:] {
		item, ok := parseRow(row)
		if !ok {
			out.Skipped++
			continue
		}
		res, err := frame.Calculate(item, decimals)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseRow(row []string) (frame.Request, bool) {
	if len(row) < 2 {
		return frame.Request{}, false
	}
	mode, err := frame.ParseMode(row[0])
	if err != nil {
		return frame.Request{}, false
	}
	fields := mode.Fields()
	if len(row) < 1+len(fields) {
		return frame.Request{}, false
	}
	values := make(frame.FormValues, len(fields))
	for i, fld := range fields {
		values[fld.Key] = strings.TrimSpace(row[1+i])
	}
	return frame.Request{Mode: mode.String(), Inputs: values}, true
}

var exportHeader = []interface{}{"Mode", "Output", "Value", "Display"}

const exportSheet = "Outputs"

// Export lays the results out one output row per line.
func Export(results []frame.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		f.Close()
		return nil, err
	}
	line := 2
	for _, res := range results {
		for _, r := range res.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, line)
			if err := sw.SetRow(cell, []interface{}{res.Mode.String(), r.Label, r.Value, r.Display}); err != nil {
				f.Close()
				return nil, err
			}
			line++
		}
	}
	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
