package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore persists uploaded health-record files and resolves stored
// paths into retrievable URLs.
type FileStore interface {
	Save(file *multipart.FileHeader) (path string, err error)
	Remove(path string) error
	URL(path string) string
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

type localStore struct {
	dir     string
	baseURL string
}

// NewLocalStore returns a FileStore writing under dir and serving files
// from baseURL.
func NewLocalStore(dir, baseURL string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *localStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file type %q: only PDF and image files are allowed", ext)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), ext)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.Join(filepath.Base(s.dir), name), nil
}

func (s *localStore) Remove(path string) error {
	full := filepath.Join(filepath.Dir(s.dir), path)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (s *localStore) URL(path string) string {
	return s.baseURL + "/" + filepath.ToSlash(path)
}
