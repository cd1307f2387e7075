package http

import (
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"
)

// PostingHandler serves job, training and tender advertisements
type PostingHandler struct {
	postingSvc service.PostingService
}

func NewPostingHandler(postingSvc service.PostingService) *PostingHandler {
	return &PostingHandler{postingSvc: postingSvc}
}

func (h *PostingHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.JobFilter{
		JobType:  domain.JobType(q.String("job_type")),
		Location: q.String("location"),
		Search:   q.String("search"),
		Page:     q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	jobs, total, err := h.postingSvc.ListJobs(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(jobs, total, filter.Page))
}

func (h *PostingHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var job domain.JobAdvertisement
	if err := decodeJSON(r, &job); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.postingSvc.CreateJob(r.Context(), orgID, &job); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *PostingHandler) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jobs, err := h.postingSvc.ListMyJobs(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *PostingHandler) ListTrainings(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.TrainingFilter{
		IsOnline: q.Bool("is_online"),
		IsFree:   q.Bool("is_free"),
		Search:   q.String("search"),
		Page:     q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	trainings, total, err := h.postingSvc.ListTrainings(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(trainings, total, filter.Page))
}

func (h *PostingHandler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var training domain.Training
	if err := decodeJSON(r, &training); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.postingSvc.CreateTraining(r.Context(), orgID, &training); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, training)
}

func (h *PostingHandler) ListMyTrainings(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	trainings, err := h.postingSvc.ListMyTrainings(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trainings)
}

func (h *PostingHandler) ListTenders(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.TenderFilter{
		Category: q.String("category"),
		Search:   q.String("search"),
		Page:     q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	tenders, total, err := h.postingSvc.ListTenders(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(tenders, total, filter.Page))
}

func (h *PostingHandler) CreateTender(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var tender domain.TenderAdvertisement
	if err := decodeJSON(r, &tender); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.postingSvc.CreateTender(r.Context(), orgID, &tender); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tender)
}

func (h *PostingHandler) ListMyTenders(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tenders, err := h.postingSvc.ListMyTenders(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tenders)
}
