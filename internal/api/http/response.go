package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/security"
	"ngoforum-backend/internal/service"
	"ngoforum-backend/internal/storage"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// listResponse wraps one page of results
type listResponse struct {
	Count    int32 `json:"count"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
	Results  any   `json:"results"`
}

func newListResponse(results any, total int32, page domain.Page) listResponse {
	page = page.Normalize()
	return listResponse{Count: total, Page: page.Page, PageSize: page.PageSize, Results: results}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, security.ErrWrongTokenType),
		errors.Is(err, storage.ErrInvalidToken):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "the resource is not in a state that allows this operation"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "the resource already exists"})
	case errors.Is(err, storage.ErrInvalidKey):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		verr := domain.NewValidationError()
		if errors.Is(err, io.EOF) {
			verr.Add("non_field_errors", "Request body is required.")
		} else {
			verr.Add("non_field_errors", "Invalid JSON body: "+err.Error())
		}
		return verr
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for bodies that may be omitted
func decodeOptionalJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	verr := domain.NewValidationError()
	verr.Add("non_field_errors", "Invalid JSON body: "+err.Error())
	return verr
}
