package http

import (
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"
)

// SecurityHandler serves security incidents and access constraints
type SecurityHandler struct {
	securitySvc service.SecurityService
}

func NewSecurityHandler(securitySvc service.SecurityService) *SecurityHandler {
	return &SecurityHandler{securitySvc: securitySvc}
}

func (h *SecurityHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQueryParams(r)
	filter := domain.IncidentFilter{
		Severity: domain.Severity(q.String("severity")),
		Status:   domain.IncidentStatus(q.String("status")),
		Page:     q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	incidents, total, err := h.securitySvc.ListIncidents(r.Context(), p, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(incidents, total, filter.Page))
}

func (h *SecurityHandler) GetIncident(w http.ResponseWriter, r *http.Request) {
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
	incident, err := h.securitySvc.GetIncident(r.Context(), p, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incident)
}

func (h *SecurityHandler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var incident domain.SecurityIncident
	if err := decodeJSON(r, &incident); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.securitySvc.ReportIncident(r.Context(), p, &incident); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, incident)
}

type incidentUpdateRequest struct {
	Status        domain.IncidentStatus `json:"status"`
	FollowUpNotes string                `json:"follow_up_notes"`
}

func (h *SecurityHandler) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req incidentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	incident, err := h.securitySvc.UpdateIncident(r.Context(), id, req.Status, req.FollowUpNotes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incident)
}

func (h *SecurityHandler) ListConstraints(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQueryParams(r)
	filter := domain.ConstraintFilter{
		ConstraintType: domain.ConstraintType(q.String("constraint_type")),
		Status:         domain.ConstraintStatus(q.String("status")),
		CountyID:       q.Int32("county"),
		Page:           q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	constraints, total, err := h.securitySvc.ListConstraints(r.Context(), p, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(constraints, total, filter.Page))
}

func (h *SecurityHandler) GetConstraint(w http.ResponseWriter, r *http.Request) {
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
	constraint, err := h.securitySvc.GetConstraint(r.Context(), p, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, constraint)
}

func (h *SecurityHandler) ReportConstraint(w http.ResponseWriter, r *http.Request) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var constraint domain.AccessConstraint
	if err := decodeJSON(r, &constraint); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.securitySvc.ReportConstraint(r.Context(), p, &constraint); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, constraint)
}

type constraintUpdateRequest struct {
	Status          domain.ConstraintStatus `json:"status"`
	ResolutionNotes string                  `json:"resolution_notes"`
}

func (h *SecurityHandler) UpdateConstraint(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req constraintUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	constraint, err := h.securitySvc.UpdateConstraint(r.Context(), id, req.Status, req.ResolutionNotes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, constraint)
}
