package frame

import (
	"encoding/json"
	"log"
	"net/http"

	"GlassFrame/internal/format"
)

type Handler struct {
	Decimals int
}

type Request struct {
	Mode   string     `json:"mode"`
	Inputs FormValues `json:"inputs"`
}

type DisplayRow struct {
	Row
	Display string `json:"display"`
}

type Result struct {
	Mode  Mode         `json:"mode"`
	Label string       `json:"label"`
	Rows  []DisplayRow `json:"rows"`
}

type Sheet struct {
	Mode   Mode    `json:"mode"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// Calculate evaluates a request and attaches the display strings.
func Calculate(req Request, decimals int) (Result, error) {
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return Result{}, err
	}
	return Display(mode, Evaluate(mode, ParseInputs(req.Inputs)), decimals), nil
}

func Display(mode Mode, rows []Row, decimals int) Result {
	out := Result{Mode: mode, Label: mode.Label(), Rows: make([]DisplayRow, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, DisplayRow{Row: r, Display: format.WithUnit(r.Value, decimals, r.Unit)})
	}
	return out
}

func Catalogue() []Sheet {
	sheets := make([]Sheet, 0, len(modes))
	for _, m := range Modes() {
		sheets = append(sheets, Sheet{Mode: m, Label: m.Label(), Fields: m.Fields()})
	}
	return sheets
}

func (h *Handler) Sheets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Catalogue())
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(req, h.Decimals)
	if err != nil {
		log.Printf("frame calc: %v", err)
		http.Error(w, "Unknown mode", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
