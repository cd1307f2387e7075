package http

import (
	"context"
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"
)

type ModerationHandler struct {
	moderationSvc service.ModerationService
}

func NewModerationHandler(moderationSvc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationSvc: moderationSvc}
}

func (h *ModerationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.ModerationFilter{
		Status: domain.ModerationStatus(q.String("status")),
		Kind:   domain.ContentKind(q.String("content_kind")),
		Page:   q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	entries, total, err := h.moderationSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(entries, total, filter.Page))
}

func (h *ModerationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.moderationSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type submissionRequest struct {
	Kind     domain.ContentKind `json:"content_kind"`
	ObjectID int32              `json:"object_id"`
	Notes    string             `json:"submission_notes"`
}

// Submit puts a member's own content back into the review queue, e.g. after
// editing a rejected item
func (h *ModerationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req submissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.moderationSvc.Submit(r.Context(), domain.ContentRef{Kind: req.Kind, ObjectID: req.ObjectID}, orgID, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.moderationSvc.Approve)
}

func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.moderationSvc.Reject)
}

type decideFunc func(ctx context.Context, entryID, reviewerID int32, notes string) (*domain.ModerationEntry, error)

func (h *ModerationHandler) decide(w http.ResponseWriter, r *http.Request, decide decideFunc) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req decisionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := decide(r.Context(), id, p.UserID, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
