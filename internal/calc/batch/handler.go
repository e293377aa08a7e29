package batch

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"GlassFrame/internal/calc/frame"
)

const maxUploadSize = 10 << 20 // 10MB

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Decimals int
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input, h.Decimals)
	if err != nil {
		batchError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Import(file, h.Decimals)
	if err != nil {
		if errors.Is(err, ErrEmptySheet) {
			http.Error(w, "Empty sheet", http.StatusBadRequest)
			return
		}
		log.Printf("batch import: %v", err)
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input, h.Decimals)
	if err != nil {
		batchError(w, err)
		return
	}
	f, err := Export(res.Results)
	if err != nil {
		log.Printf("batch export: %v", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="outputs.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Printf("batch export write: %v", err)
	}
}

func batchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoItems):
		http.Error(w, "No items", http.StatusBadRequest)
	case errors.Is(err, frame.ErrUnknownMode):
		http.Error(w, "Unknown mode in "+err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Calculation error", http.StatusBadRequest)
	}
}
