package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockStorageService implements file storage on the local filesystem, for
// development without a cloud bucket. Upload URLs point back at the server's
// own mock endpoints.
type MockStorageService struct {
	baseURL   string // server URL, e.g. "http://localhost:8080"
	uploadDir string // local directory for uploads
}

func NewMockStorageService(baseURL, uploadDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &MockStorageService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadDir: uploadDir,
	}, nil
}

// NewObjectKey mints a unique storage key for an upload, namespaced by owner.
func NewObjectKey(ownerID int32, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("u%d/%s%s", ownerID, uuid.NewString(), ext)
}

func (m *MockStorageService) GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	// The key travels in the query so the upload handler knows where to save.
	return fmt.Sprintf("%s/storage/upload?key=%s", m.baseURL, url.QueryEscape(key)), nil
}

func (m *MockStorageService) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/files?key=%s", m.baseURL, url.QueryEscape(key))
}

func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	path, err := m.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	path, err := m.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (m *MockStorageService) SaveFile(key string, reader io.Reader) error {
	path, err := m.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	path, err := m.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// resolve maps a key onto the upload directory, refusing path traversal.
func (m *MockStorageService) resolve(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(m.uploadDir, clean), nil
}
