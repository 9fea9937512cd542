// Package localfs stores uploaded voucher scans on the local disk.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
)

// Store writes files under Dir and serves them from BaseURL.
type Store struct {
	Dir     string
	BaseURL string
}

// NewStore creates dir if needed.
func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Store{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

var _ portsrepo.AttachmentStore = (*Store)(nil)

// Save writes content atomically and never overwrites an existing file.
func (s *Store) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload: %w", err)
	}

	dest := filepath.Join(s.Dir, name)
	if _, err := os.Stat(dest); err == nil {
		return "", apperrors.NewConflictError(fmt.Sprintf("file %s already exists", name))
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}
	return s.BaseURL + "/" + name, nil
}

// Delete removes name from Dir.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete upload %s: %w", name, err)
	}
	return nil
}

func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid file name %q", name))
	}
	return nil
}
