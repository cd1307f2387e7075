package http

import (
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"

	"github.com/gorilla/mux"
)

// PageHandler serves site pages, announcements and the contact form
type PageHandler struct {
	pageSvc    service.PageService
	contactSvc service.ContactService
}

func NewPageHandler(pageSvc service.PageService, contactSvc service.ContactService) *PageHandler {
	return &PageHandler{pageSvc: pageSvc, contactSvc: contactSvc}
}

func (h *PageHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pageSvc.ListPages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageSvc.GetPage(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *PageHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	// anonymous callers carry no principal
	p, _ := GetPrincipalFromContext(r.Context())
	announcements, err := h.pageSvc.ListAnnouncements(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *PageHandler) SendContact(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipalFromContext(r.Context())
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	msg := &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactSvc.Send(r.Context(), p, msg); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *PageHandler) ListContact(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.ContactMessageFilter{
		Status: domain.ContactStatus(q.String("status")),
		Page:   q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	messages, total, err := h.contactSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(messages, total, filter.Page))
}

type contactStatusRequest struct {
	Status     domain.ContactStatus `json:"status"`
	ReplyNotes string               `json:"reply_notes"`
}

func (h *PageHandler) SetContactStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req contactStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	msg, err := h.contactSvc.UpdateStatus(r.Context(), id, req.Status, req.ReplyNotes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
