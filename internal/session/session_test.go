package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/session"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return tok
}

func TestSession_NilSafe(t *testing.T) {
	var s *session.Session
	if s.Authenticated() {
		t.Error("nil session should not be authenticated")
	}
	if s.IsAdmin() {
		t.Error("nil session should not be admin")
	}
	if s.Expired(time.Now()) {
		t.Error("nil session should not report expiry")
	}
	if got := s.BearerToken(); got != "" {
		t.Errorf("BearerToken = %q, want empty", got)
	}
}

func TestSession_IsAdmin(t *testing.T) {
	s := &session.Session{Token: "x", User: library.User{Role: library.RoleAdmin}}
	if !s.IsAdmin() {
		t.Error("expected admin")
	}
	s.Token = ""
	if s.IsAdmin() {
		t.Error("admin role without a token should not count")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &session.Session{Token: "x", ExpiresAt: now}
	if !s.Expired(now) {
		t.Error("token expiring now should be expired")
	}
	if s.Expired(now.Add(-time.Second)) {
		t.Error("token should be valid before exp")
	}
	if (&session.Session{Token: "x"}).Expired(now) {
		t.Error("token without exp should never expire")
	}
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, jwt.MapClaims{"sub": "42", "role": "admin", "exp": exp.Unix()})

	c, err := session.ParseClaims(tok)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if c.Subject != "42" {
		t.Errorf("Subject = %q, want %q", c.Subject, "42")
	}
	if c.Role != library.RoleAdmin {
		t.Errorf("Role = %q, want %q", c.Role, library.RoleAdmin)
	}
	if !c.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", c.ExpiresAt, exp)
	}
}

func TestParseClaims_Opaque(t *testing.T) {
	if _, err := session.ParseClaims("17|laravel-sanctum-opaque"); err == nil {
		t.Error("expected error for opaque token")
	}
}

func TestStore_LoadMissing(t *testing.T) {
	st := session.NewStore(filepath.Join(t.TempDir(), "session.yml"))
	s, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Authenticated() {
		t.Error("missing file should load an empty session")
	}
}

func TestStore_LoginPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir", "session.yml")
	st := session.NewStore(path)

	tok := signedToken(t, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	if _, err := st.Login(tok, library.User{ID: 1, Name: "Ada"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := fi.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain after write")
	}

	reloaded, err := session.NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Token != tok {
		t.Error("token not restored")
	}
	if reloaded.User.Name != "Ada" {
		t.Errorf("User.Name = %q, want %q", reloaded.User.Name, "Ada")
	}
	if !reloaded.IsAdmin() {
		t.Error("role should be filled from the token claims")
	}
	if reloaded.ExpiresAt.IsZero() {
		t.Error("expiry should be read from the token")
	}
}

func TestStore_LoginKeepsResponseRole(t *testing.T) {
	st := session.NewStore(filepath.Join(t.TempDir(), "session.yml"))
	tok := signedToken(t, jwt.MapClaims{"role": "admin"})
	s, err := st.Login(tok, library.User{Role: library.RoleUser})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.User.Role != library.RoleUser {
		t.Errorf("Role = %q, want the login response's %q", s.User.Role, library.RoleUser)
	}
}

func TestStore_ExpiredTokenDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yml")
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	if _, err := session.NewStore(path).Login(tok, library.User{ID: 1}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	s, err := session.NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Authenticated() {
		t.Error("expired session should load as empty")
	}
}

func TestStore_Logout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yml")
	st := session.NewStore(path)
	if _, err := st.Login("opaque-token", library.User{ID: 2}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !st.Current().Authenticated() {
		t.Fatal("expected authenticated session after login")
	}
	if err := st.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if st.Current().Authenticated() {
		t.Error("session should be cleared after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed")
	}
	if err := st.Logout(); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}
