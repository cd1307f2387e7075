package storage

import (
	"fmt"
	"time"

	"ngoforum-backend/internal/config"
)

// DefaultPresignedExpiration is how long an upload or download URL stays valid
const DefaultPresignedExpiration = 15 * time.Minute

// New builds the storage backend selected in the configuration
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "mock":
		return NewMockStorageService(cfg.BaseURL, cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
