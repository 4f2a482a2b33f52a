// Package session holds the signed-in account and its bearer token. A
// *Session is handed read-only to every controller; only Store mutates it.
package session

import (
	"time"

	"github.com/blackwell-systems/libractl/internal/library"
)

// Session is the authenticated identity of the current user.
type Session struct {
	Token     string       `yaml:"token"`
	User      library.User `yaml:"user"`
	ExpiresAt time.Time    `yaml:"expires_at,omitempty"`
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the account carries the admin role. The result
// only decides which screens are offered.
func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.User.IsAdmin()
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp never expire client-side.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// BearerToken returns the token, or "" for a nil or empty session.
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return s.Token
}
