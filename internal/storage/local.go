// Package storage persists uploaded media on the local filesystem.
// Files are stored under opaque UUID-based names so uploads can never
// collide or traverse outside the media directory.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lumagram/internal/middleware"
)

// LocalStore writes uploaded files under a single base directory.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Save stores the uploaded file and returns an opaque reference
// (a UUID with the original file extension preserved).
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	ref := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.basePath, ref))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	middleware.Logger.Info("media stored", "ref", ref, "size", file.Size)
	return ref, nil
}

// SaveBytes stores raw content under an opaque reference, used by seeding.
func (s *LocalStore) SaveBytes(data []byte, ext string) (string, error) {
	ref := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.basePath, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return ref, nil
}

// Path resolves a stored reference to a filesystem path. References
// containing path separators are rejected.
func (s *LocalStore) Path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return "", fmt.Errorf("invalid media reference %q", ref)
	}
	full := filepath.Join(s.basePath, ref)
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}
