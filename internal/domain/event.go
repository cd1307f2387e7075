package domain

import "time"

type EventType string

const (
	EventTypeConference EventType = "CONFERENCE"
	EventTypeWorkshop   EventType = "WORKSHOP"
	EventTypeTraining   EventType = "TRAINING"
	EventTypeExpo       EventType = "EXPO"
	EventTypeMeeting    EventType = "MEETING"
	EventTypeWebinar    EventType = "WEBINAR"
	EventTypeOther      EventType = "OTHER"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeConference, EventTypeWorkshop, EventTypeTraining, EventTypeExpo,
		EventTypeMeeting, EventTypeWebinar, EventTypeOther:
		return true
	}
	return false
}

// EventStatus is the schedule state of an event. It is unrelated to moderation.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusPast      EventStatus = "PAST"
	EventStatusCancelled EventStatus = "CANCELLED"
)

type Event struct {
	ID                   int32       `json:"id"`
	EventTitle           string      `json:"title"`
	Slug                 string      `json:"slug"`
	Theme                string      `json:"theme"`
	Description          string      `json:"description"`
	EventDate            time.Time   `json:"event_date"`
	EventTime            string      `json:"event_time"` // HH:MM, optional
	EndDate              *time.Time  `json:"end_date"`
	Location             string      `json:"location"`
	Venue                string      `json:"venue"`
	EventType            EventType   `json:"event_type"`
	Status               EventStatus `json:"status"`
	RegistrationRequired bool        `json:"registration_required"`
	RegistrationLink     string      `json:"registration_link"`
	MaxAttendees         *int32      `json:"max_attendees"`
	FeaturedImageKey     string      `json:"featured_image"`
	AttachmentKey        string      `json:"attachments"`
	CreatedBy            *int32      `json:"created_by"`
	IsApproved           bool        `json:"is_approved"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

func (e *Event) ContentRef() ContentRef {
	return ContentRef{Kind: ContentKindEvent, ObjectID: e.ID}
}
func (e *Event) Owner() int32 {
	if e.CreatedBy == nil {
		return 0
	}
	return *e.CreatedBy
}
func (e *Event) Title() string { return e.EventTitle }
func (e *Event) ApplyModeration(status ModerationStatus) {
	e.IsApproved = ApprovalFlagFor(status)
}

type EventAttendance struct {
	ID            int32     `json:"id"`
	EventID       int32     `json:"event"`
	OrgID         int32     `json:"organization"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	AttendeePhone string    `json:"attendee_phone"`
	RegisteredAt  time.Time `json:"registered_at"`
	Attended      bool      `json:"attended"`
	Notes         string    `json:"notes"`
}

type EventFilter struct {
	Status    EventStatus
	EventType EventType
	Search    string
	Page
}
