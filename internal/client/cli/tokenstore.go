package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/konega2/portfolio-sub001/internal/filex"
)

// TokenStore persists the session token in a single file readable only by
// the owner. A zero Path turns every operation into a no-op.
type TokenStore struct {
	Path string
}

func (s TokenStore) Load() (string, error) {
	if s.Path == "" {
		return "", nil
	}
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s TokenStore) Save(token string) error {
	if s.Path == "" {
		return nil
	}
	if err := filex.EnsureDir(filepath.Dir(s.Path)); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s TokenStore) Clear() error {
	if s.Path == "" {
		return nil
	}
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
