package report

import (
	"bytes"
	"encoding/json"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"GlassFrame/internal/auth"
	"GlassFrame/internal/calc/frame"
	"GlassFrame/internal/format"
	"GlassFrame/internal/repo"
)

type Input struct {
	Mode   string           `json:"mode"`
	Name   string           `json:"name"`
	Inputs frame.FormValues `json:"inputs"`
}

type Handler struct {
	Decimals int
	Repo     repo.Repository
	Now      func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	mode, err := frame.ParseMode(input.Mode)
	if err != nil {
		http.Error(w, "Unknown mode", http.StatusBadRequest)
		return
	}

	in := frame.ParseInputs(input.Inputs)
	sheet := NewSheet(mode, name, in, h.Decimals, h.now())

	var buf bytes.Buffer
	if err := Render(&buf, sheet); err != nil {
		log.Printf("report render: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	fileName := FileName(name, mode)
	if h.Repo != nil {
		login, _ := auth.UserFromContext(r.Context())
		rec := repo.Report{
			Login:    login,
			Name:     name,
			Mode:     mode.String(),
			FileName: fileName,
			Inputs:   echoLine(sheet.Inputs, h.Decimals),
		}
		if _, err := h.Repo.SaveReport(r.Context(), rec); err != nil {
			log.Printf("SaveReport Error: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("report write: %v", err)
	}
}

func echoLine(rows []frame.Row, decimals int) string {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, r.Label+"="+format.Format(r.Value, decimals))
	}
	return strings.Join(parts, ", ")
}
