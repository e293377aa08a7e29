package auth

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"GlassFrame/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

type contextKey string

const userKey contextKey = "userLogin"

const (
	cookieName = "session_token"
	sessionTTL = 30 * 24 * time.Hour

	// lastUserCookie pre-fills the login form in the browser that last signed in.
	lastUserCookie = "last_user"
	lastUserTTL    = 365 * 24 * time.Hour
)

type Authenv struct {
	JWTkey []byte
	Users  []Credential
	Repo   repo.Repository
	// Secure marks the session cookie HTTPS-only.
	Secure bool
}

type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type Loginrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

// Rate limiting middleware
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := i.getLimiter(clientHost(r.RemoteAddr))
		if !limiter.Allow() {
			http.Error(w, "Too Many Requests. Try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// UserFromContext returns the login AuthMiddleware stored for the request.
func UserFromContext(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(userKey).(string)
	return login, ok && login != ""
}

func WithUser(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, userKey, login)
}

func (env *Authenv) RedirectIfLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err == nil {
			if _, ok := env.parseToken(cookie.Value); ok {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// parseToken validates an HS256 session token and returns its login.
func (env *Authenv) parseToken(tokenString string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		if err != nil {
			log.Println("token parse error:", err)
		}
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return "", false
	}
	// the user list may have changed since the token was issued
	if !Known(env.Users, login) {
		return "", false
	}
	return login, true
}

// AuthMiddleware rejects requests without a valid session. API calls get
// 401; page loads are sent to the login page.
func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deny := func() {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/auth/", http.StatusSeeOther)
		}

		cookie, err := r.Cookie(cookieName)
		if err != nil {
			deny()
			return
		}
		login, ok := env.parseToken(cookie.Value)
		if !ok {
			deny()
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), login)))
	})
}

func (env *Authenv) addCookie(w http.ResponseWriter, login string) error {
	expiration := time.Now().Add(sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"login": login,
		"exp":   expiration.Unix(),
	})
	tokenString, err := token.SignedString(env.JWTkey)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tokenString,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req Loginrequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}

	if !Check(env.Users, req.Login, req.Password) {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	if err := env.addCookie(w, req.Login); err != nil {
		log.Println("token create error:", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     lastUserCookie,
		Value:    url.QueryEscape(req.Login),
		Expires:  time.Now().Add(lastUserTTL),
		Path:     "/api/last-user",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	if env.Repo != nil {
		if err := env.Repo.RecordLogin(r.Context(), req.Login); err != nil {
			log.Printf("RecordLogin Error: %v", err)
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Authentication successful"))
}

func (env *Authenv) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// LastUser returns the login remembered by this browser, if any.
func LastUser(r *http.Request) string {
	c, err := r.Cookie(lastUserCookie)
	if err != nil {
		return ""
	}
	login, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return login
}
