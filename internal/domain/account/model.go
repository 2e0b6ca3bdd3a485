package account

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/ganot/unolims/internal/jsonx"
	"github.com/golang-jwt/jwt/v5"
)

// Roles a registered user can hold.
var Roles = []string{"ADMIN", "ANALISTA", "VENDEDOR", "EXPEDICAO"}

// DefaultRole is preselected on the registration form.
const DefaultRole = "ADMIN"

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name            string `json:"nome"`
	Role            string `json:"cargo"`
	Email           string `json:"email"`
	Password        string `json:"senha"`
	PasswordConfirm string `json:"confirmarSenha"`
}

// User describes the logged in account.
type User struct {
	ID    jsonx.ID `json:"id,omitempty"`
	Name  string   `json:"nome"`
	Role  string   `json:"cargo"`
	Email string   `json:"email"`
}

// Session is the login response.
type Session struct {
	Token      string          `json:"userToken"`
	User       User            `json:"userInfo"`
	Expiration json.RawMessage `json:"expiracaoToken,omitempty"`
}

// ExpiresAt returns when the token stops being valid. The API field may be an
// RFC 3339 string or a unix timestamp; without it the token's exp claim is used.
func (s Session) ExpiresAt() (time.Time, bool) {
	if t, ok := parseExpiration(s.Expiration); ok {
		return t, true
	}
	return tokenExpiry(s.Token)
}

// Expired reports whether the session is past its expiry. Sessions with no
// known expiry never expire locally.
func (s Session) Expired(now time.Time) bool {
	t, ok := s.ExpiresAt()
	return ok && !now.Before(t)
}

func parseExpiration(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if t, err := time.Parse(time.RFC3339, str); err == nil {
			return t, true
		}
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			return unixAny(n), true
		}
		return time.Time{}, false
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return unixAny(n), true
	}
	return time.Time{}, false
}

// unixAny accepts seconds or milliseconds.
func unixAny(n int64) time.Time {
	if n > 1e12 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
