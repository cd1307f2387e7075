package http

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"

	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/service"
	"ngoforum-backend/internal/storage"

	"github.com/gorilla/mux"
)

// UploadHandler issues upload tickets and, for the local backend, receives
// and serves the files behind the presigned URLs
type UploadHandler struct {
	uploadSvc service.UploadService
	store     storage.LocalStore // nil unless the backend stores bytes locally
	maxBytes  int64
}

func NewUploadHandler(uploadSvc service.UploadService, store storage.LocalStore, maxFileSizeMB int64) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, store: store, maxBytes: maxFileSizeMB * 1024 * 1024}
}

func (h *UploadHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req service.UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ticket, err := h.uploadSvc.RequestUpload(r.Context(), p, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

// HandleUpload handles HTTP PUT requests to presigned upload URLs
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing key parameter"})
		return
	}

	if err := h.store.ConsumeUploadToken(mux.Vars(r)["token"], key); err != nil {
		writeError(w, r, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := h.store.SaveFile(key, body); err != nil {
		if delErr := h.store.DeleteFile(r.Context(), key); delErr != nil {
			logger.WarnContext(r.Context(), "Failed to clean up upload", "key", key, "error", delErr)
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
			return
		}
		writeError(w, r, err)
		return
	}

	logger.InfoContext(r.Context(), "File uploaded", "key", key)
	// mimic S3 response
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload streams a stored file
func (h *UploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	// public routes carry no principal
	p, _ := GetPrincipalFromContext(r.Context())
	if err := h.uploadSvc.AuthorizeDownload(r.Context(), p, key); err != nil {
		writeError(w, r, err)
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "file not found"})
			return
		}
		writeError(w, r, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if service.IsPublicDownload(key) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	} else {
		w.Header().Set("Cache-Control", "private, no-store")
	}

	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "Download interrupted", "key", key, "error", err)
	}
}
