package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"GlassFrame/internal/auth"
	"GlassFrame/internal/config"
	"GlassFrame/internal/repo"

	"github.com/gorilla/mux"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		TokenKey:  []byte("test-key"),
		Users:     []auth.Credential{{Username: "ravi", Password: "glass123"}},
		StaticDir: t.TempDir(),
		Decimals:  2,
		RateLimit: 1000,
		RateBurst: 1000,
	}
	r := mux.NewRouter()
	HandleList(r, cfg, repo.NewMemory())
	srv := httptest.NewServer(CORS(r))
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}

func TestRoutesRequireSession(t *testing.T) {
	srv := newServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	res, err := client.Post(srv.URL+"/api/user/frame/calc", "application/json", strings.NewReader(`{"mode":"ROUND"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.StatusCode)
	}

	res, err = client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect to login, got %d", res.StatusCode)
	}
}

func TestLoginCalcAndExport(t *testing.T) {
	srv := newServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	res, err := client.Post(srv.URL+"/api/login", "application/json", strings.NewReader(`{"login":"ravi","password":"glass123"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected login 200, got %d", res.StatusCode)
	}
	var session *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "session_token" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no session cookie")
	}

	post := func(path, body string) *http.Response {
		req, _ := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(session)
		res, err := client.Do(req)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		return res
	}

	res = post("/api/user/frame/calc", `{"mode":"SQUARE_RECT","inputs":{"heightIn":"10","widthIn":"20"}}`)
	var buf bytes.Buffer
	buf.ReadFrom(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK || !strings.Contains(buf.String(), `"display":"1523.80"`) {
		t.Fatalf("unexpected calc response %d: %s", res.StatusCode, buf.String())
	}

	res = post("/api/user/report/pdf", `{"mode":"ROUND","name":"Rahul","inputs":{"size":"18"}}`)
	buf.Reset()
	buf.ReadFrom(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK || !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("unexpected pdf response %d", res.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/user/profile", nil)
	req.AddCookie(session)
	res, err = client.Do(req)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	buf.Reset()
	buf.ReadFrom(res.Body)
	res.Body.Close()
	if !strings.Contains(buf.String(), "Rahul_ROUND.pdf") {
		t.Fatalf("expected export in profile history, got %s", buf.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t)
	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/login", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent || res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected preflight response %d %v", res.StatusCode, res.Header)
	}
}

func TestLastUserNotShared(t *testing.T) {
	srv := newServer(t)
	newClient := func() *http.Client {
		jar, err := cookiejar.New(nil)
		if err != nil {
			t.Fatalf("cookiejar: %v", err)
		}
		return &http.Client{Jar: jar, CheckRedirect: noRedirect}
	}
	lastUser := func(c *http.Client) string {
		res, err := c.Get(srv.URL + "/api/last-user")
		if err != nil {
			t.Fatalf("last-user: %v", err)
		}
		defer res.Body.Close()
		var body struct {
			Login string `json:"login"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return body.Login
	}

	a, b := newClient(), newClient()
	res, err := a.Post(srv.URL+"/api/login", "application/json", strings.NewReader(`{"login":"ravi","password":"glass123"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected login 200, got %d", res.StatusCode)
	}

	if got := lastUser(a); got != "ravi" {
		t.Fatalf("expected signed-in client to see ravi, got %q", got)
	}
	if got := lastUser(b); got != "" {
		t.Fatalf("other client saw %q", got)
	}
}
