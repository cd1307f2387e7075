package service

import (
	"context"
	"errors"
	"strings"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
)

type eventService struct {
	repo    repository.EventRepository
	orgRepo repository.OrganizationRepository
}

func NewEventService(repo repository.EventRepository, orgRepo repository.OrganizationRepository) EventService {
	return &eventService{repo: repo, orgRepo: orgRepo}
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int32, error) {
	filter.Page = filter.Page.Normalize()
	return s.repo.ListApproved(ctx, filter)
}

// Get only exposes approved events
func (s *eventService) Get(ctx context.Context, id int32) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsApproved {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, orgID int32, event *domain.Event) error {
	v := domain.NewValidationError()
	v.Require("title", event.EventTitle)
	v.Require("description", event.Description)
	v.Require("location", event.Location)
	if event.EventDate.IsZero() {
		v.Add("event_date", "This field is required.")
	}
	if event.EventType == "" {
		event.EventType = domain.EventTypeOther
	} else if !event.EventType.Valid() {
		v.Add("event_type", "Select a valid event type.")
	}
	if event.EndDate != nil && event.EndDate.Before(event.EventDate) {
		v.Add("end_date", "End date cannot be before the event date.")
	}
	if event.MaxAttendees != nil && *event.MaxAttendees < 1 {
		v.Add("max_attendees", "Ensure this value is greater than or equal to 1.")
	}
	if err := v.Err(); err != nil {
		return err
	}

	event.EventTitle = strings.TrimSpace(event.EventTitle)
	event.CreatedBy = &orgID
	event.Status = domain.EventStatusUpcoming

	entry, err := gate(ctx, s.orgRepo, orgID, event, "")
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, event, entry); err != nil {
		return err
	}
	countSubmission(entry)
	return nil
}

func (s *eventService) ListMine(ctx context.Context, orgID int32) ([]domain.Event, error) {
	return s.repo.ListByCreator(ctx, orgID)
}

func (s *eventService) Register(ctx context.Context, orgID int32, attendance *domain.EventAttendance) error {
	v := domain.NewValidationError()
	if attendance.EventID == 0 {
		v.Add("event", "This field is required.")
	}
	v.Require("attendee_name", attendance.AttendeeName)
	requireEmail(v, "attendee_email", attendance.AttendeeEmail)
	if err := v.Err(); err != nil {
		return err
	}

	attendance.OrgID = orgID
	attendance.Attended = false
	attendance.AttendeeEmail = strings.ToLower(strings.TrimSpace(attendance.AttendeeEmail))

	err := s.repo.Register(ctx, attendance)
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		v.Add("event", "This event is fully booked.")
		return v
	case errors.Is(err, domain.ErrConflict):
		v.Add("attendee_email", "This attendee is already registered for the event.")
		return v
	}
	return err
}

func (s *eventService) ListMyAttendances(ctx context.Context, orgID int32) ([]domain.EventAttendance, error) {
	return s.repo.ListAttendancesByOrg(ctx, orgID)
}
