// Package session tracks who is using the application and which persistence
// scope backs that identity. Two independent scopes exist: a long-lived one
// for registered sessions and a short-lived one for guest sessions. They are
// never mixed.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/filex"
)

// Credentials is what a scope persists: the access token plus the identity
// it was issued for.
type Credentials struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
	Guest bool        `json:"guest,omitempty"`
}

// Scope is a key/value storage area for one kind of session.
//
// Load returns (nil, nil) when nothing is stored. A non-nil error means the
// stored data exists but could not be decoded; the caller is expected to
// Clear the scope and continue.
type Scope interface {
	Load() (*Credentials, error)
	Save(creds *Credentials) error
	Clear() error
}

// FileScope stores credentials as a JSON file.
type FileScope struct {
	path string
}

// NewFileScope builds a scope backed by the given file path.
func NewFileScope(path string) *FileScope {
	return &FileScope{path: path}
}

// DefaultRegisteredScope is the long-lived scope: a file in the user's
// config directory that survives across sessions.
func DefaultRegisteredScope() (*FileScope, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}
	return NewFileScope(filepath.Join(dir, "trackit", "credentials.json")), nil
}

// DefaultGuestScope is the short-lived scope: a file in the temp directory,
// wiped on logout and not expected to outlive the machine session.
func DefaultGuestScope() *FileScope {
	return NewFileScope(filepath.Join(os.TempDir(), "trackit-guest-session.json"))
}

func (s *FileScope) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	creds := &Credentials{}
	if err := json.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if creds.Token == "" {
		return nil, nil
	}
	return creds, nil
}

func (s *FileScope) Save(creds *Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := filex.EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}
	// Tokens inside: keep the file private to the user.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileScope) Clear() error {
	return filex.RemoveIfExists(s.path)
}
