package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Service stores uploaded images on the local filesystem and hands back the
// storage key plus the public URL the API serves them under.
type Service interface {
	Save(category, filename string, reader io.Reader) (key string, url string, err error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

type localService struct {
	baseURL    string
	uploadsDir string
}

// NewLocalService creates a filesystem-backed storage service rooted at
// uploadsDir. Files are served under baseURL + "/media/".
func NewLocalService(baseURL, uploadsDir string) (Service, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &localService{baseURL: baseURL, uploadsDir: uploadsDir}, nil
}

func (s *localService) Save(category, filename string, reader io.Reader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", "", fmt.Errorf("unsupported image type: %q", ext)
	}

	key := filepath.Join(category, uuid.New().String()+ext)
	fullPath := filepath.Join(s.uploadsDir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(fullPath)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	url := fmt.Sprintf("%s/media/%s", s.baseURL, filepath.ToSlash(key))
	return key, url, nil
}

func (s *localService) Open(key string) (io.ReadCloser, error) {
	// Keys come from the database, but reject traversal anyway.
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid storage key: %q", key)
	}
	return os.Open(filepath.Join(s.uploadsDir, clean))
}

func (s *localService) Delete(key string) error {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	err := os.Remove(filepath.Join(s.uploadsDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
