package http

import (
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"

	"github.com/gorilla/mux"
)

type ForumHandler struct {
	forumSvc service.ForumService
}

func NewForumHandler(forumSvc service.ForumService) *ForumHandler {
	return &ForumHandler{forumSvc: forumSvc}
}

func (h *ForumHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.forumSvc.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ForumHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.ForumPostFilter{
		CategoryID: q.Int32("category"),
		IsPinned:   q.Bool("is_pinned"),
		Search:     q.String("search"),
		Page:       q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	posts, total, err := h.forumSvc.ListPosts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(posts, total, filter.Page))
}

// GetPost counts as a view
func (h *ForumHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.forumSvc.GetPost(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *ForumHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	comments, err := h.forumSvc.ListComments(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var post domain.ForumPost
	if err := decodeJSON(r, &post); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.forumSvc.CreatePost(r.Context(), orgID, &post); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *ForumHandler) ListMyPosts(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	posts, err := h.forumSvc.ListMyPosts(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *ForumHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var comment domain.ForumComment
	if err := decodeJSON(r, &comment); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.forumSvc.CreateComment(r.Context(), orgID, &comment); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
