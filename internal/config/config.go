package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"GlassFrame/internal/auth"
	"GlassFrame/internal/format"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

var (
	ErrMissingTokenKey = errors.New("TOKEN_KEY environment variable is not set")
	ErrMissingUsers    = errors.New("APP_USERS environment variable is not set")
)

const maxDecimals = 6

type Config struct {
	Addr        string
	TokenKey    []byte
	Users       []auth.Credential
	DatabaseURL string
	TLSCert     string
	TLSKey      string
	StaticDir   string
	Decimals    int
	RateLimit   rate.Limit
	RateBurst   int
}

func defaultConfig() Config {
	return Config{
		Addr:      ":8080",
		StaticDir: "./static",
		Decimals:  format.DefaultDecimals,
		RateLimit: 5,
		RateBurst: 10,
	}
}

// TLS reports whether both certificate files are configured.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads .env (if present) and then the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("no .env loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	if v := strings.TrimSpace(getenv("ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := getenv("TOKEN_KEY"); v != "" {
		cfg.TokenKey = []byte(v)
	} else {
		return Config{}, ErrMissingTokenKey
	}

	users, err := ParseUsers(getenv("APP_USERS"))
	if err != nil {
		return Config{}, fmt.Errorf("APP_USERS: %w", err)
	}
	if len(users) == 0 {
		return Config{}, ErrMissingUsers
	}
	cfg.Users = users

	cfg.DatabaseURL = strings.TrimSpace(getenv("DATABASE_URL"))
	cfg.TLSCert = strings.TrimSpace(getenv("TLS_CERT"))
	cfg.TLSKey = strings.TrimSpace(getenv("TLS_KEY"))
	if v := strings.TrimSpace(getenv("STATIC_DIR")); v != "" {
		cfg.StaticDir = v
	}

	if v := strings.TrimSpace(getenv("DECIMALS")); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 0 || d > maxDecimals {
			return Config{}, fmt.Errorf("DECIMALS must be 0..%d, got %q", maxDecimals, v)
		}
		cfg.Decimals = d
	}
	if v := strings.TrimSpace(getenv("RATE_LIMIT")); v != "" {
		l, err := strconv.ParseFloat(v, 64)
		if err != nil || l <= 0 {
			return Config{}, fmt.Errorf("RATE_LIMIT must be a positive number, got %q", v)
		}
		cfg.RateLimit = rate.Limit(l)
	}
	if v := strings.TrimSpace(getenv("RATE_BURST")); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil || b <= 0 {
			return Config{}, fmt.Errorf("RATE_BURST must be a positive integer, got %q", v)
		}
		cfg.RateBurst = b
	}
	return cfg, nil
}

// ParseUsers accepts either a JSON array of {"username","password"} objects
// or "user:pass" pairs separated by commas or newlines.
func ParseUsers(raw string) ([]auth.Credential, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var users []auth.Credential
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			return nil, err
		}
		out := users[:0]
		for _, u := range users {
			u.Username = strings.TrimSpace(u.Username)
			if u.Username != "" {
				out = append(out, u)
			}
		}
		return out, nil
	}

	var out []auth.Credential
	for _, pair := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, pass, ok := strings.Cut(pair, ":")
		user = strings.TrimSpace(user)
		if !ok || user == "" {
			return nil, fmt.Errorf("bad entry %q, want user:password", pair)
		}
		out = append(out, auth.Credential{Username: user, Password: pass})
	}
	return out, nil
}
