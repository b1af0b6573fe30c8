package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"pdf-to-speech/internal/domain"
)

// FileDocumentStore keeps uploads on local disk while they are converted.
type FileDocumentStore struct {
	dir    string
	logger domain.Logger
}

// NewFileDocumentStore creates the upload directory if needed.
func NewFileDocumentStore(dir string, logger domain.Logger) (*FileDocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileDocumentStore{dir: dir, logger: logger}, nil
}

// Store writes r to {dir}/{id}_{name}. A zero-byte upload is removed and
// reported as domain.ErrEmptyUpload.
func (s *FileDocumentStore) Store(ctx context.Context, r io.Reader, suggestedName string) (*domain.UploadedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrEmptyUpload
	}

	name := newID() + "_" + sanitizeOriginalName(suggestedName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	size, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write upload: %w", copyErr)
	}
	if size == 0 {
		_ = os.Remove(path)
		return nil, domain.ErrEmptyUpload
	}

	s.logger.Debug("Upload stored", "name", name, "size", size)
	return &domain.UploadedDocument{
		OriginalName: suggestedName,
		Name:         name,
		Path:         path,
		Size:         size,
	}, nil
}

// Delete removes the upload; a missing file is not an error.
func (s *FileDocumentStore) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

// Resolve returns the on-disk path of a stored upload.
func (s *FileDocumentStore) Resolve(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", domain.ErrNotFound
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", domain.ErrNotFound
	}
	return path, nil
}
