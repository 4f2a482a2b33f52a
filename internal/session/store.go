package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/util"
)

// Store persists the session as a single YAML file. It is the only writer
// of session state: populated at login, cleared at logout.
type Store struct {
	path string
	now  func() time.Time

	mu  sync.Mutex
	cur *Session
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Current returns the last loaded or created session, or an empty one.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return &Session{}
	}
	return s.cur
}

// Load restores the session from disk. A missing file is an empty session.
// An expired token is discarded so the user is asked to log in again.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.cur = &Session{}
		return s.cur, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", s.path, err)
	}
	if sess.Expired(s.now()) {
		sess = Session{}
	}
	s.cur = &sess
	return s.cur, nil
}

// Login records a fresh token and user, fills the role and expiry from the
// token claims when it is a JWT, and persists the result.
func (s *Store) Login(token string, user library.User) (*Session, error) {
	sess := &Session{Token: token, User: user}
	if c, err := ParseClaims(token); err == nil {
		sess.ExpiresAt = c.ExpiresAt
		if sess.User.Role == "" {
			sess.User.Role = c.Role
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(sess); err != nil {
		return nil, err
	}
	s.cur = sess
	return sess, nil
}

// Logout clears the in-memory session and removes the file.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = &Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// write stores sess atomically with owner-only permissions.
func (s *Store) write(sess *Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(s.path, data, 0600, 0700); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
