package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
)

// approvalWriter persists a moderation outcome onto one gated entity
type approvalWriter func(ctx context.Context, tx *sql.Tx, objectID int32, status domain.ModerationStatus, at time.Time) error

// statusColumnWriter is used by tables that track moderation in a status enum
func statusColumnWriter(table string) approvalWriter {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = $2 WHERE id = $3`, table)
	return func(ctx context.Context, tx *sql.Tx, objectID int32, status domain.ModerationStatus, at time.Time) error {
		res, err := tx.ExecContext(ctx, query, domain.ContentStatusFor(status), at, objectID)
		if err != nil {
			return err
		}
		return expectOneRow(res, domain.ErrNotFound)
	}
}

// approvalFlagWriter is used by tables that track moderation in is_approved
func approvalFlagWriter(table string) approvalWriter {
	query := fmt.Sprintf(`UPDATE %s SET is_approved = $1, updated_at = $2 WHERE id = $3`, table)
	return func(ctx context.Context, tx *sql.Tx, objectID int32, status domain.ModerationStatus, at time.Time) error {
		res, err := tx.ExecContext(ctx, query, domain.ApprovalFlagFor(status), at, objectID)
		if err != nil {
			return err
		}
		return expectOneRow(res, domain.ErrNotFound)
	}
}

// gatedTable is where one content kind lives and who owns its rows
type gatedTable struct {
	table       string
	ownerColumn string
	write       approvalWriter
}

var gatedTables = map[domain.ContentKind]gatedTable{
	domain.ContentKindForumPost:    {"forum_posts", "author_id", statusColumnWriter("forum_posts")},
	domain.ContentKindForumComment: {"forum_comments", "author_id", statusColumnWriter("forum_comments")},
	domain.ContentKindEvent:        {"events", "created_by", approvalFlagWriter("events")},
	domain.ContentKindJob:          {"job_advertisements", "organization_id", approvalFlagWriter("job_advertisements")},
	domain.ContentKindResource:     {"resources", "uploaded_by", approvalFlagWriter("resources")},
	domain.ContentKindTraining:     {"trainings", "submitted_by", approvalFlagWriter("trainings")},
	domain.ContentKindTender:       {"tender_advertisements", "organization_id", approvalFlagWriter("tender_advertisements")},
}

type moderationRepository struct {
	db *sql.DB
}

func NewModerationRepository(db *sql.DB) repository.ModerationRepository {
	return &moderationRepository{db: db}
}

const moderationColumns = `id, content_kind, object_id, submitted_by, COALESCE(submission_notes, ''),
	moderation_status, reviewed_by, reviewed_at, COALESCE(reviewer_notes, ''), created_at, updated_at`

func scanModerationEntry(row interface{ Scan(...any) error }) (*domain.ModerationEntry, error) {
	e := &domain.ModerationEntry{}
	err := row.Scan(&e.ID, &e.Kind, &e.ObjectID, &e.SubmittedBy, &e.SubmissionNotes,
		&e.Status, &e.ReviewedBy, &e.ReviewedAt, &e.ReviewerNotes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func insertModerationEntry(ctx context.Context, q queryer, e *domain.ModerationEntry) error {
	query := `INSERT INTO moderation_queue (content_kind, object_id, submitted_by, submission_notes, moderation_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return q.QueryRowContext(ctx, query, e.Kind, e.ObjectID, e.SubmittedBy, e.SubmissionNotes, e.Status, now).Scan(&e.ID)
}

// Create queues an entry for an existing object owned by the submitter
func (r *moderationRepository) Create(ctx context.Context, e *domain.ModerationEntry) error {
	logger.EnterMethod("moderationRepository.Create", "kind", e.Kind, "objectID", e.ObjectID)

	gt, ok := gatedTables[e.Kind]
	if !ok {
		err := fmt.Errorf("%w: unknown content kind %q", domain.ErrNotFound, e.Kind)
		logger.ExitMethodWithError("moderationRepository.Create", err)
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owner int32
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR SHARE`, gt.ownerColumn, gt.table), e.ObjectID).Scan(&owner)
	if err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("moderationRepository.Create", err, "kind", e.Kind, "objectID", e.ObjectID)
		return err
	}
	if owner != e.SubmittedBy {
		logger.ExitMethodWithError("moderationRepository.Create", domain.ErrPermissionDenied, "kind", e.Kind, "objectID", e.ObjectID, "submittedBy", e.SubmittedBy)
		return domain.ErrPermissionDenied
	}

	if err := insertModerationEntry(ctx, tx, e); err != nil {
		logger.ExitMethodWithError("moderationRepository.Create", err, "kind", e.Kind, "objectID", e.ObjectID)
		return mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	logger.ExitMethod("moderationRepository.Create", "entryID", e.ID)
	return nil
}

func (r *moderationRepository) GetByID(ctx context.Context, id int32) (*domain.ModerationEntry, error) {
	e, err := scanModerationEntry(r.db.QueryRowContext(ctx, `SELECT `+moderationColumns+` FROM moderation_queue WHERE id = $1`, id))
	return e, mapError(err)
}

func (r *moderationRepository) GetPendingByRef(ctx context.Context, ref domain.ContentRef) (*domain.ModerationEntry, error) {
	e, err := scanModerationEntry(r.db.QueryRowContext(ctx,
		`SELECT `+moderationColumns+` FROM moderation_queue
		 WHERE content_kind = $1 AND object_id = $2 AND moderation_status = 'PENDING'`, ref.Kind, ref.ObjectID))
	return e, mapError(err)
}

func (r *moderationRepository) List(ctx context.Context, f domain.ModerationFilter) ([]domain.ModerationEntry, int32, error) {
	var c conditions
	if f.Status != "" {
		c.add("moderation_status = ?", f.Status)
	}
	if f.Kind != "" {
		c.add("content_kind = ?", f.Kind)
	}

	total, err := c.count(ctx, r.db, "moderation_queue")
	if err != nil {
		return nil, 0, err
	}

	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+moderationColumns+` FROM moderation_queue`+c.where()+` ORDER BY created_at`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ModerationEntry
	for rows.Next() {
		e, err := scanModerationEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *e)
	}
	return entries, total, rows.Err()
}

func (r *moderationRepository) Decide(ctx context.Context, id int32, d domain.ModerationDecision) (*domain.ModerationEntry, error) {
	logger.EnterMethod("moderationRepository.Decide", "entryID", id, "decision", d.Status)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry, err := scanModerationEntry(tx.QueryRowContext(ctx,
		`SELECT `+moderationColumns+` FROM moderation_queue WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		logger.ExitMethodWithError("moderationRepository.Decide", err, "entryID", id)
		return nil, mapError(err)
	}
	if !entry.IsPending() {
		logger.ExitMethodWithError("moderationRepository.Decide", domain.ErrInvalidState, "entryID", id, "status", entry.Status)
		return nil, domain.ErrInvalidState
	}

	gt, ok := gatedTables[entry.Kind]
	if !ok {
		err := fmt.Errorf("%w: no approval writer for content kind %q", domain.ErrNotFound, entry.Kind)
		logger.ExitMethodWithError("moderationRepository.Decide", err, "entryID", id)
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE moderation_queue
		 SET moderation_status = $1, reviewed_by = $2, reviewed_at = $3, reviewer_notes = $4, updated_at = $3
		 WHERE id = $5 AND moderation_status = 'PENDING'`,
		d.Status, d.ReviewerID, d.DecidedAt, d.Notes, id)
	if err != nil {
		return nil, err
	}
	if err := expectOneRow(res, domain.ErrInvalidState); err != nil {
		logger.ExitMethodWithError("moderationRepository.Decide", err, "entryID", id)
		return nil, err
	}

	if err := gt.write(ctx, tx, entry.ObjectID, d.Status, d.DecidedAt); err != nil {
		logger.ExitMethodWithError("moderationRepository.Decide", err, "entryID", id, "kind", entry.Kind, "objectID", entry.ObjectID)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	reviewer := d.ReviewerID
	decidedAt := d.DecidedAt
	entry.Status = d.Status
	entry.ReviewedBy = &reviewer
	entry.ReviewedAt = &decidedAt
	entry.ReviewerNotes = d.Notes
	entry.UpdatedAt = decidedAt

	logger.ExitMethod("moderationRepository.Decide", "entryID", id, "kind", entry.Kind, "objectID", entry.ObjectID, "decision", d.Status)
	return entry, nil
}
