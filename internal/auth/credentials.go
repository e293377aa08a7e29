package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credential is one allowed login. Password is either plain text or a
// bcrypt hash.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Check reports whether username/password matches an entry. The username
// is trimmed and compared case-sensitively.
func Check(users []Credential, username, password string) bool {
	username = strings.TrimSpace(username)
	if username == "" {
		return false
	}
	for _, u := range users {
		if strings.TrimSpace(u.Username) != username {
			continue
		}
		if isBcrypt(u.Password) {
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
				return true
			}
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			return true
		}
	}
	return false
}

// Known reports whether username is in the list at all.
func Known(users []Credential, username string) bool {
	for _, u := range users {
		if strings.TrimSpace(u.Username) == username {
			return true
		}
	}
	return false
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
