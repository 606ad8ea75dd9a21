package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	appErrors "github.com/Carlos6464/publiflow-backend/pkg/errors"
)

// ImageStore persists uploaded post images on disk under a base directory.
// Stored files get a random name so client-supplied names never touch the
// filesystem.
type ImageStore struct {
	baseDir      string
	maxFileSize  int64
	allowedMIMEs map[string]struct{}
}

// NewImageStore ensures the base directory exists and returns a handle.
func NewImageStore(baseDir string, maxFileSize int64, allowedMIMEs []string) (*ImageStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}

	mimeSet := make(map[string]struct{}, len(allowedMIMEs))
	for _, m := range allowedMIMEs {
		mimeSet[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}

	return &ImageStore{baseDir: baseDir, maxFileSize: maxFileSize, allowedMIMEs: mimeSet}, nil
}

// SaveUpload validates and stores a multipart file, returning the stored filename.
func (s *ImageStore) SaveUpload(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "an image upload is required")
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", appErrors.Clone(appErrors.ErrValidation, "image exceeds the maximum allowed size")
	}
	if len(s.allowedMIMEs) > 0 {
		contentType := strings.ToLower(file.Header.Get("Content-Type"))
		if _, ok := s.allowedMIMEs[contentType]; !ok {
			return "", appErrors.Clone(appErrors.ErrValidation, "unsupported image type")
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close() //nolint:errcheck

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close() //nolint:errcheck

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}

	return name, nil
}

// Delete removes a stored image if present.
func (s *ImageStore) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	path := filepath.Join(s.baseDir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

// Dir exposes the base directory (used to mount static file serving).
func (s *ImageStore) Dir() string {
	return s.baseDir
}
