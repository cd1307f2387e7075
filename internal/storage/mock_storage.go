package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ngoforum-backend/internal/logger"

	"github.com/google/uuid"
)

type uploadGrant struct {
	key       string
	expiresAt time.Time
}

// MockStorageService implements file storage using the local filesystem.
// Uploads go through the server's own /api/v1/upload route.
type MockStorageService struct {
	baseURL  string // Server URL (e.g., "http://localhost:8080")
	filesDir string

	mu     sync.Mutex
	grants map[string]uploadGrant
	now    func() time.Time
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	filesDir := filepath.Join(uploadsDir, "files")
	if err := os.MkdirAll(filesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create files directory: %w", err)
	}

	return &MockStorageService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		filesDir: filesDir,
		grants:   make(map[string]uploadGrant),
		now:      time.Now,
	}, nil
}

// resolve maps a key onto a path inside filesDir, refusing anything that
// would escape it
func (m *MockStorageService) resolve(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) {
		return "", ErrInvalidKey
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return filepath.Join(m.filesDir, clean), nil
}

// GeneratePresignedUploadURL issues a one-shot upload token for key
func (m *MockStorageService) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	if _, err := m.resolve(key); err != nil {
		return "", err
	}
	if expiresIn <= 0 {
		expiresIn = DefaultPresignedExpiration
	}

	token := uuid.New().String()
	m.mu.Lock()
	m.grants[token] = uploadGrant{key: key, expiresAt: m.now().Add(expiresIn)}
	m.mu.Unlock()

	return fmt.Sprintf("%s/api/v1/upload/%s?key=%s", m.baseURL, token, url.QueryEscape(key)), nil
}

// GeneratePresignedDownloadURL generates a mock download URL
func (m *MockStorageService) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	if _, err := m.resolve(key); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/download/%s", m.baseURL, url.PathEscape(key)), nil
}

func (m *MockStorageService) ConsumeUploadToken(token, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	grant, ok := m.grants[token]
	if !ok || grant.key != key {
		return ErrInvalidToken
	}
	delete(m.grants, token)
	if m.now().After(grant.expiresAt) {
		return ErrInvalidToken
	}
	return nil
}

// FileExists checks if file exists in local filesystem
func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := m.resolve(key)
	if err != nil {
		return false, 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		logger.Warn("Stat failed", "key", key, "error", err)
		return false, 0, err
	}
	return true, info.Size(), nil
}

// DeleteFile deletes file from local filesystem
func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	fullPath, err := m.resolve(key)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SaveFile writes the upload to a temp file next to the target and renames
// it into place, so a failed or truncated upload never becomes readable
func (m *MockStorageService) SaveFile(key string, reader io.Reader) error {
	fullPath, err := m.resolve(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

// ReadFile reads file from local filesystem
func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	fullPath, err := m.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
