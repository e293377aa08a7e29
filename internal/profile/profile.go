package profile

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"GlassFrame/internal/auth"
	"GlassFrame/internal/repo"
)

const recentReports = 20

type ProfileHandler struct {
	Repo repo.Repository
}

type Profile struct {
	Login     string        `json:"login"`
	LastLogin *time.Time    `json:"last_login"`
	Reports   []repo.Report `json:"reports"`
}

type LastUserResponse struct {
	Login string `json:"login"`
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	login, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prof := Profile{Login: login, Reports: []repo.Report{}}
	at, found, err := h.Repo.LastLogin(r.Context(), login)
	if err != nil {
		log.Printf("LastLogin Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if found {
		prof.LastLogin = &at
	}
	reports, err := h.Repo.ListReports(r.Context(), login, recentReports)
	if err != nil {
		log.Printf("ListReports Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	prof.Reports = reports

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prof)
}

// LastUser tells the login page whom to pre-fill. Only the browser that
// signed in gets its own login back.
func (h *ProfileHandler) LastUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LastUserResponse{Login: auth.LastUser(r)})
}
