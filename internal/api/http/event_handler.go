package http

import (
	"net/http"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/service"
)

type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := domain.EventFilter{
		Status:    domain.EventStatus(q.String("status")),
		EventType: domain.EventType(q.String("event_type")),
		Search:    q.String("search"),
		Page:      q.Page(),
	}
	if err := q.Err(); err != nil {
		writeError(w, r, err)
		return
	}
	events, total, err := h.eventSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(events, total, filter.Page))
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	event, err := h.eventSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var event domain.Event
	if err := decodeJSON(r, &event); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.eventSvc.Create(r.Context(), orgID, &event); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	events, err := h.eventSvc.ListMine(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Register signs an attendee up for the event in the path
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
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
	var attendance domain.EventAttendance
	if err := decodeJSON(r, &attendance); err != nil {
		writeError(w, r, err)
		return
	}
	attendance.EventID = id
	if err := h.eventSvc.Register(r.Context(), orgID, &attendance); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, attendance)
}

func (h *EventHandler) ListMyAttendances(w http.ResponseWriter, r *http.Request) {
	orgID, err := memberOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	attendances, err := h.eventSvc.ListMyAttendances(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendances)
}
