// Package session holds the signed-in user's credentials: a bearer token and
// username cached in memory and mirrored to a file, replacing what the browser
// client kept in local storage. Login writes both, logout clears both together.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type fileState struct {
	AuthToken string `yaml:"auth_token"`
	Username  string `yaml:"username"`
}

// Session is an explicit credential holder injected into the API client. Safe
// for concurrent use.
type Session struct {
	path string

	mu       sync.RWMutex
	token    string
	username string
	loaded   bool
}

// DefaultPath places the session file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "bookerang", "session.yaml"), nil
}

// New returns a session backed by the file at path. The file is only read when
// the in-memory token is empty.
func New(path string) *Session {
	return &Session{path: path}
}

// Token returns the bearer token, falling back to the session file when memory
// is empty. An empty string means "not signed in".
func (s *Session) Token() string {
	s.mu.RLock()
	if s.token != "" || s.loaded {
		defer s.mu.RUnlock()
		return s.token
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" && !s.loaded {
		s.loadLocked()
	}
	return s.token
}

// Username returns the signed-in username, if any.
func (s *Session) Username() string {
	s.Token() // ensure the file has been consulted
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Authenticated reports whether a token is available.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Set stores the credentials in memory and mirrors them to disk.
func (s *Session) Set(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.username = username
	s.loaded = true

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := yaml.Marshal(fileState{AuthToken: token, Username: username})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the credentials from memory and disk together.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.username = ""
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// loadLocked reads the session file. A missing or unreadable file simply means
// no stored session. Callers hold s.mu.
func (s *Session) loadLocked() {
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var state fileState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return
	}
	s.token = state.AuthToken
	s.username = state.Username
}
