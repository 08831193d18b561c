// Package session issues and reads the opaque token that partitions carts
// between visitors.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	// CookieName carries the session token.
	CookieName = "session_id"

	// MaxAge is the cookie lifetime. Tokens are never rotated.
	MaxAge = 7 * 24 * time.Hour

	tokenBytes = 16
)

// Provider resolves session tokens from requests and writes the cookie.
type Provider struct {
	// Secure marks the cookie as HTTPS-only.
	Secure bool
}

// NewToken returns 128 random bits, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Resolve returns the request's session token, or a newly generated one with
// fresh set. Nothing is persisted.
func (p *Provider) Resolve(r *http.Request) (token string, fresh bool, err error) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, false, nil
	}
	token, err = NewToken()
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

// SetCookie writes the session cookie for token.
func (p *Provider) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(MaxAge / time.Second),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
