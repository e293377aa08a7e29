package frame

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type calcResponse struct {
	Mode  string `json:"mode"`
	Label string `json:"label"`
	Rows  []struct {
		Label   string  `json:"label"`
		Value   float64 `json:"value"`
		Unit    string  `json:"unit"`
		Display string  `json:"display"`
	} `json:"rows"`
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{Decimals: 2}
	body := `{"mode":"CAPSULE","inputs":{"H":"36","W":22}}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/frame/calc", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var res calcResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Mode != "CAPSULE" || res.Label != "CAPSULE" {
		t.Fatalf("unexpected mode %q label %q", res.Mode, res.Label)
	}
	wantDisplay := []string{"7.00", "34.54", "14.00", "34.54", "9.67 ft"}
	if len(res.Rows) != len(wantDisplay) {
		t.Fatalf("expected %d rows, got %d", len(wantDisplay), len(res.Rows))
	}
	for i, want := range wantDisplay {
		if res.Rows[i].Display != want {
			t.Fatalf("row %d (%s): display %q, want %q", i, res.Rows[i].Label, res.Rows[i].Display, want)
		}
	}
}

func TestHandlerCalcGarbageInputsAreZero(t *testing.T) {
	h := &Handler{}
	body := `{"mode":"round","inputs":{"size":"eighteen"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/frame/calc", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var res calcResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	got := []string{}
	for _, r := range res.Rows {
		got = append(got, r.Display)
	}
	if strings.Join(got, "|") != "0|8|8|1 ft" {
		t.Fatalf("unexpected rows %v", got)
	}
}

func TestHandlerCalcRejects(t *testing.T) {
	cases := map[string]string{
		"bad json":     `{"mode":`,
		"unknown mode": `{"mode":"OVAL","inputs":{}}`,
		"missing mode": `{"inputs":{"size":"1"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/user/frame/calc", strings.NewReader(body))
			rec := httptest.NewRecorder()
			(&Handler{}).Calc(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandlerSheets(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user/sheets", nil)
	rec := httptest.NewRecorder()
	(&Handler{}).Sheets(rec, req)

	var sheets []struct {
		Mode   string  `json:"mode"`
		Label  string  `json:"label"`
		Fields []Field `json:"fields"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&sheets); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sheets) != 4 || sheets[1].Mode != "SQUARE_RECT" || sheets[1].Label != "Square + Rectangle" {
		t.Fatalf("unexpected catalogue %#v", sheets)
	}
}

func TestCalculateHugeInputDisplaysFinite(t *testing.T) {
	res, err := Calculate(Request{Mode: "ROUND", Inputs: FormValues{KeySize: "1e306"}}, 2)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for _, r := range res.Rows {
		if strings.Contains(r.Display, "Inf") || strings.Contains(r.Display, "NaN") {
			t.Fatalf("%s displayed as %q", r.Label, r.Display)
		}
	}
	if d := res.Rows[0].Display; !strings.HasSuffix(d, ".00") || len(d) < 300 {
		t.Fatalf("TOTAL SIZE displayed as %q", d)
	}
}
