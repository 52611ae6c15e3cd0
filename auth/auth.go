// Package auth persists the session opened by "wellets login".
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/wellets"
)

// ErrNotLoggedIn is returned when no session has been persisted.
var ErrNotLoggedIn = errors.New("not logged in")

// Store is a session stored as a JSON file.
type Store struct {
	Path string
}

// DefaultPath is ~/.config/wellets_cli/token.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the session file: %w", err)
	}
	return filepath.Join(home, ".config", "wellets_cli", "token.json"), nil
}

// Retrieve reads the persisted session.
func (s Store) Retrieve() (*wellets.Session, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	session := new(wellets.Session)
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("decoding session %q: %w", s.Path, err)
	}
	return session, nil
}

// Persist writes the session, readable by the user only, and returns the file path.
func (s Store) Persist(session wellets.Session) (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.Path, 0o600); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}
	return s.Path, nil
}

// Clear forgets the session. It is not an error to clear a missing session.
func (s Store) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Token returns the session token, or "" if not logged in.
func (s Store) Token() string {
	session, err := s.Retrieve()
	if err != nil {
		return ""
	}
	return session.Token
}

// Email returns the email of the logged in user, or "" if not logged in.
func (s Store) Email() string {
	session, err := s.Retrieve()
	if err != nil {
		return ""
	}
	return session.Email
}
