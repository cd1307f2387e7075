package http

import (
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"
)

// ResourceHandler serves the resource library and FAQs
type ResourceHandler struct {
	resourceSvc service.ResourceService
}

func NewResourceHandler(resourceSvc service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceSvc: resourceSvc}
}

func (h *ResourceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.resourceSvc.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.ResourceFilter{
		CategoryID:   q.Int32("category"),
		ResourceType: domain.ResourceType(q.String("resource_type")),
		IsFeatured:   q.Bool("is_featured"),
		Search:       q.String("search"),
		Page:         q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	resources, total, err := h.resourceSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(resources, total, filter.Page))
}

// TrackDownload bumps the counter and returns the resource so the client can
// follow its file or external link
func (h *ResourceHandler) TrackDownload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	resource, err := h.resourceSvc.TrackDownload(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var resource domain.Resource
	if err := decodeJSON(r, &resource); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.resourceSvc.Create(r.Context(), orgID, &resource); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

func (h *ResourceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resources, err := h.resourceSvc.ListMine(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *ResourceHandler) ListFAQCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.resourceSvc.ListFAQCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ResourceHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.FAQFilter{
		CategoryID: q.Int32("category"),
		Search:     q.String("search"),
		Page:       q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	faqs, total, err := h.resourceSvc.ListFAQs(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(faqs, total, filter.Page))
}
