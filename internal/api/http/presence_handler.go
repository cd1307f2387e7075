package http

import (
	"bytes"
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/service"
)

const presenceExportFilename = "3w_data.csv"

// PresenceHandler serves the 3W (who does what where) endpoints
type PresenceHandler struct {
	presenceSvc service.PresenceService
}

func NewPresenceHandler(presenceSvc service.PresenceService) *PresenceHandler {
	return &PresenceHandler{presenceSvc: presenceSvc}
}

func (h *PresenceHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.presenceSvc.ListStates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *PresenceHandler) ListCounties(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	stateID := q.Int32("state")
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	counties, err := h.presenceSvc.ListCounties(r.Context(), stateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counties)
}

func (h *PresenceHandler) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.presenceSvc.ListSectors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sectors)
}

func presenceFilter(q *queryParams) domain.PresenceFilter {
	return domain.PresenceFilter{
		MemberType: domain.MemberType(q.String("organization_type")),
		SectorID:   q.Int32("sector"),
		CountyID:   q.Int32("county"),
		StateID:    q.Int32("state"),
		Year:       q.Int32("year"),
		Page:       q.Page(),
	}
}

func (h *PresenceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := presenceFilter(q)
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	records, total, err := h.presenceSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(records, total, filter.Page))
}

// Export returns every matching record as a CSV attachment
func (h *PresenceHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := presenceFilter(q)
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.presenceSvc.ExportCSV(r.Context(), filter, &buf); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+presenceExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.WarnContext(r.Context(), "Failed to write 3W export", "error", err)
	}
}

func (h *PresenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var presence domain.OperationalPresence
	if err := decodeJSON(r, &presence); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.presenceSvc.Create(r.Context(), orgID, &presence); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, presence)
}

func (h *PresenceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := h.presenceSvc.ListMine(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *PresenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.presenceSvc.Delete(r.Context(), orgID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
