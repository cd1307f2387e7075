package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/utils"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, slug, COALESCE(theme, ''), description, event_date, COALESCE(event_time, ''),
	end_date, location, COALESCE(venue, ''), event_type, status, registration_required,
	COALESCE(registration_link, ''), max_attendees, COALESCE(featured_image, ''), COALESCE(attachments, ''),
	created_by, is_approved, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.EventTitle, &e.Slug, &e.Theme, &e.Description, &e.EventDate, &e.EventTime,
		&e.EndDate, &e.Location, &e.Venue, &e.EventType, &e.Status, &e.RegistrationRequired,
		&e.RegistrationLink, &e.MaxAttendees, &e.FeaturedImageKey, &e.AttachmentKey,
		&e.CreatedBy, &e.IsApproved, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	defer rows.Close()
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListApproved(ctx context.Context, f domain.EventFilter) ([]domain.Event, int32, error) {
	var c conditions
	c.add("is_approved = true")
	if f.Status != "" {
		c.add("status = ?", f.Status)
	}
	if f.EventType != "" {
		c.add("event_type = ?", f.EventType)
	}
	c.search(f.Search, "title", "description", "location")

	total, err := c.count(ctx, r.db, "events")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events`+c.where()+` ORDER BY event_date`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	events, err := scanEvents(rows)
	return events, total, err
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	return e, mapError(err)
}

func (r *eventRepository) ListByCreator(ctx context.Context, orgID int32) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events WHERE created_by = $1 ORDER BY event_date DESC`, orgID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event, gate *domain.ModerationEntry) error {
	return insertGated(ctx, r.db, gate, func(tx *sql.Tx) (int32, error) {
		slug, err := uniqueSlug(ctx, tx, "events", utils.Slugify(e.EventTitle))
		if err != nil {
			return 0, err
		}
		e.Slug = slug
		now := time.Now().UTC()
		e.CreatedAt = now
		e.UpdatedAt = now

		query := `INSERT INTO events (title, slug, theme, description, event_date, event_time, end_date, location, venue,
		              event_type, status, registration_required, registration_link, max_attendees, featured_image,
		              attachments, created_by, is_approved, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		          RETURNING id`
		err = tx.QueryRowContext(ctx, query, e.EventTitle, e.Slug, e.Theme, e.Description, e.EventDate, e.EventTime,
			e.EndDate, e.Location, e.Venue, e.EventType, e.Status, e.RegistrationRequired, e.RegistrationLink,
			e.MaxAttendees, e.FeaturedImageKey, e.AttachmentKey, e.CreatedBy, e.IsApproved, now).Scan(&e.ID)
		return e.ID, err
	})
}

func (r *eventRepository) Register(ctx context.Context, a *domain.EventAttendance) error {
	logger.EnterMethod("eventRepository.Register", "eventID", a.EventID, "orgID", a.OrgID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the event row so concurrent registrations see each other's counts
	var maxAttendees *int32
	err = tx.QueryRowContext(ctx, `SELECT max_attendees FROM events WHERE id = $1 AND is_approved = true FOR UPDATE`, a.EventID).Scan(&maxAttendees)
	if err != nil {
		logger.ExitMethodWithError("eventRepository.Register", err, "eventID", a.EventID)
		return mapError(err)
	}

	if maxAttendees != nil {
		var registered int32
		if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM event_attendances WHERE event_id = $1`, a.EventID).Scan(&registered); err != nil {
			return err
		}
		if registered >= *maxAttendees {
			logger.ExitMethodWithError("eventRepository.Register", domain.ErrInvalidState, "eventID", a.EventID, "registered", registered)
			return domain.ErrInvalidState
		}
	}

	a.RegisteredAt = time.Now().UTC()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO event_attendances (event_id, organization_id, attendee_name, attendee_email, attendee_phone, registered_at, attended, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, false, $7) RETURNING id`,
		a.EventID, a.OrgID, a.AttendeeName, a.AttendeeEmail, a.AttendeePhone, a.RegisteredAt, a.Notes).Scan(&a.ID)
	if err != nil {
		logger.ExitMethodWithError("eventRepository.Register", err, "eventID", a.EventID)
		return mapError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.ExitMethod("eventRepository.Register", "attendanceID", a.ID)
	return nil
}

const attendanceColumns = `a.id, a.event_id, a.organization_id, a.attendee_name, a.attendee_email,
	COALESCE(a.attendee_phone, ''), a.registered_at, a.attended, COALESCE(a.notes, '')`

func scanAttendance(row interface{ Scan(...any) error }, a *domain.EventAttendance, extra ...any) error {
	dest := append([]any{&a.ID, &a.EventID, &a.OrgID, &a.AttendeeName, &a.AttendeeEmail,
		&a.AttendeePhone, &a.RegisteredAt, &a.Attended, &a.Notes}, extra...)
	return row.Scan(dest...)
}

func (r *eventRepository) ListAttendancesByOrg(ctx context.Context, orgID int32) ([]domain.EventAttendance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attendanceColumns+` FROM event_attendances a WHERE a.organization_id = $1 ORDER BY a.registered_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EventAttendance
	for rows.Next() {
		var a domain.EventAttendance
		if err := scanAttendance(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *eventRepository) ListReminderTargets(ctx context.Context, day time.Time) ([]repository.ReminderTarget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attendanceColumns+`, e.title, e.event_date, COALESCE(e.event_time, ''), e.location, COALESCE(e.venue, ''), e.slug
		 FROM event_attendances a JOIN events e ON e.id = a.event_id
		 WHERE e.is_approved = true AND e.status = 'UPCOMING' AND e.event_date = $1
		 ORDER BY e.id, a.id`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []repository.ReminderTarget
	for rows.Next() {
		var t repository.ReminderTarget
		if err := scanAttendance(rows, &t.Attendance,
			&t.Event.EventTitle, &t.Event.EventDate, &t.Event.EventTime, &t.Event.Location, &t.Event.Venue, &t.Event.Slug); err != nil {
			return nil, err
		}
		t.Event.ID = t.Attendance.EventID
		targets = append(targets, t)
	}
	return targets, rows.Err()
}
