package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidKey   = errors.New("invalid storage key")
	ErrInvalidToken = errors.New("invalid or expired upload token")
)

// Storage defines the file storage backend used for logos, receipts,
// certificates, tender documents and resource files
type Storage interface {
	// GeneratePresignedUploadURL generates a presigned URL for uploading
	// key: storage path/key for the file
	// contentType: MIME type (e.g., "application/pdf")
	// expiresIn: how long the URL should be valid
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL generates a presigned URL for downloading
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error
}

// LocalStore is implemented by backends that receive the bytes themselves
// through the server's upload and download routes
type LocalStore interface {
	Storage

	// ConsumeUploadToken checks an upload token issued for key and
	// invalidates it
	ConsumeUploadToken(token, key string) error
	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
}
