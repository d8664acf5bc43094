// Package filestorage saves multipart uploads to the local filesystem for
// the development server.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/pkg/logger"
)

// LocalStorage writes uploads under a base directory served at /uploads.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage ensures the base directory exists.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// SaveFile stores an uploaded file under an optional prefix subdirectory
// and returns the URL path it is served at. Filenames are randomized to
// prevent collisions.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, prefix string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := ls.basePath
	if prefix != "" {
		dir = filepath.Join(ls.basePath, prefix)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	name := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := path.Join("/uploads", prefix, name)
	logger.Debug().Str("filename", fileHeader.Filename).Str("url", url).Msg("Upload saved")
	return url, nil
}
