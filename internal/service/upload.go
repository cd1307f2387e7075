package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/storage"

	"github.com/google/uuid"
)

type UploadPurpose string

const (
	UploadPurposeLogo                UploadPurpose = "logo"
	UploadPurposeReceipt             UploadPurpose = "receipt"
	UploadPurposeCertificate         UploadPurpose = "certificate"
	UploadPurposeTenderDocument      UploadPurpose = "tender_document"
	UploadPurposeSupportingDocuments UploadPurpose = "supporting_documents"
	UploadPurposeResource            UploadPurpose = "resource"
)

// allowedExtensions per purpose; a nil list accepts any extension
var allowedExtensions = map[UploadPurpose][]string{
	UploadPurposeLogo:                {".jpg", ".jpeg", ".png", ".gif", ".webp"},
	UploadPurposeReceipt:             {".pdf", ".jpg", ".jpeg", ".png"},
	UploadPurposeCertificate:         {".pdf", ".jpg", ".jpeg", ".png"},
	UploadPurposeTenderDocument:      {".pdf", ".doc", ".docx"},
	UploadPurposeSupportingDocuments: {".pdf", ".zip"},
	UploadPurposeResource:            nil,
}

// publicPurposes are files shown on public pages and served without a token
var publicPurposes = map[UploadPurpose]bool{
	UploadPurposeLogo:           true,
	UploadPurposeResource:       true,
	UploadPurposeTenderDocument: true,
}

// IsPublicDownload reports whether key may be served to anonymous callers
func IsPublicDownload(key string) bool {
	purpose, _, ok := splitKey(key)
	return ok && publicPurposes[purpose]
}

// splitKey parses keys of the form purpose/owner/name
func splitKey(key string) (UploadPurpose, string, bool) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	purpose := UploadPurpose(parts[0])
	if _, known := allowedExtensions[purpose]; !known {
		return "", "", false
	}
	return purpose, parts[1], true
}

// keyOwner is the owner segment of keys uploaded by caller
func keyOwner(caller domain.Principal) string {
	if caller.OrgID != nil {
		return fmt.Sprintf("org%d", *caller.OrgID)
	}
	return fmt.Sprintf("u%d", caller.UserID)
}

type UploadRequest struct {
	Purpose     UploadPurpose `json:"purpose"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	Size        int64         `json:"size"`
}

type UploadTicket struct {
	Key         string    `json:"key"`
	UploadURL   string    `json:"upload_url"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type uploadService struct {
	store    storage.Storage
	maxBytes int64
	ttl      time.Duration
	now      func() time.Time
}

func NewUploadService(store storage.Storage, maxFileSizeMB int64) UploadService {
	return &uploadService{
		store:    store,
		maxBytes: maxFileSizeMB * 1024 * 1024,
		ttl:      storage.DefaultPresignedExpiration,
		now:      time.Now,
	}
}

func (s *uploadService) RequestUpload(ctx context.Context, caller domain.Principal, req UploadRequest) (*UploadTicket, error) {
	v := domain.NewValidationError()
	allowed, known := allowedExtensions[req.Purpose]
	if !known {
		v.Add("purpose", "Unknown upload purpose.")
	}
	v.Require("filename", req.Filename)
	if req.Size <= 0 {
		v.Add("size", "File is empty.")
	} else if req.Size > s.maxBytes {
		v.Add("size", fmt.Sprintf("File size cannot exceed %d MB.", s.maxBytes/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if known && allowed != nil && !containsString(allowed, ext) {
		v.Add("filename", fmt.Sprintf("Unsupported file extension. Allowed: %s.", strings.Join(allowed, ", ")))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s%s", req.Purpose, keyOwner(caller), uuid.NewString(), ext)

	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, req.ContentType, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload url: %w", err)
	}
	downloadURL, err := s.store.GeneratePresignedDownloadURL(ctx, key, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download url: %w", err)
	}

	return &UploadTicket{
		Key:         key,
		UploadURL:   uploadURL,
		DownloadURL: downloadURL,
		ExpiresAt:   s.now().Add(s.ttl),
	}, nil
}

// AuthorizeDownload lets anyone read public purposes. Receipts, certificates
// and supporting documents are limited to staff and the uploading owner.
func (s *uploadService) AuthorizeDownload(ctx context.Context, caller domain.Principal, key string) error {
	purpose, owner, ok := splitKey(key)
	if !ok {
		return storage.ErrInvalidKey
	}
	if publicPurposes[purpose] {
		return nil
	}
	if caller.UserID == 0 {
		return domain.ErrUnauthenticated
	}
	if caller.IsStaff || owner == keyOwner(caller) {
		return nil
	}
	return domain.ErrPermissionDenied
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// checkStoredFile validates a storage key submitted with a form. Empty keys
// are left to the caller's required-field checks.
func checkStoredFile(ctx context.Context, store storage.Storage, v *domain.ValidationError, field, key string, purpose UploadPurpose) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if !strings.HasPrefix(key, string(purpose)+"/") {
		v.Add(field, "Invalid file reference.")
		return nil
	}

	exists, _, err := store.FileExists(ctx, key)
	if errors.Is(err, storage.ErrInvalidKey) {
		v.Add(field, "Invalid file reference.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", field, err)
	}
	if !exists {
		v.Add(field, "The uploaded file could not be found. Upload it again.")
	}
	return nil
}
