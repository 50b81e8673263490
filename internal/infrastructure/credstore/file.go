// Package credstore persists the bearer credential across process restarts.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir   = "scm-console"
	fileName = "credential"
	fileMode = 0o600
)

// FileStore keeps the token in a mode-0600 file under the user config
// directory. It holds at most one credential.
type FileStore struct {
	path string
}

// NewFileStore builds a store rooted at dir; when dir is empty the user
// config directory is used.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("credential store: %w", err)
		}
		dir = filepath.Join(base, appDir)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, fileName)}, nil
}

func (s *FileStore) Save(token string) error {
	if err := os.WriteFile(s.path, []byte(token), fileMode); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Load returns the stored token, or "" when none exists.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
