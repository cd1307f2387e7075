package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/utils"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.ApplicationRepository
	repository.PaymentRepository
	repository.ModerationRepository
	repository.ForumRepository
	repository.EventRepository
	repository.JobRepository
	repository.TrainingRepository
	repository.TenderRepository
	repository.ResourceRepository
	repository.FAQRepository
	repository.PresenceRepository
	repository.IncidentRepository
	repository.PageRepository
	repository.AnnouncementRepository
	repository.ContactMessageRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		OrganizationRepository:   NewOrganizationRepository(db),
		ApplicationRepository:    NewApplicationRepository(db),
		PaymentRepository:        NewPaymentRepository(db),
		ModerationRepository:     NewModerationRepository(db),
		ForumRepository:          NewForumRepository(db),
		EventRepository:          NewEventRepository(db),
		JobRepository:            NewJobRepository(db),
		TrainingRepository:       NewTrainingRepository(db),
		TenderRepository:         NewTenderRepository(db),
		ResourceRepository:       NewResourceRepository(db),
		FAQRepository:            NewFAQRepository(db),
		PresenceRepository:       NewPresenceRepository(db),
		IncidentRepository:       NewIncidentRepository(db),
		PageRepository:           NewPageRepository(db),
		AnnouncementRepository:   NewAnnouncementRepository(db),
		ContactMessageRepository: NewContactMessageRepository(db),
	}
}

// Ping checks the database connection for the health endpoint
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const uniqueViolation = "23505"

// mapError translates driver errors into domain errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Constraint)
	}
	return err
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// expectOneRow turns a zero-row update into notFound
func expectOneRow(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// conditions accumulates a WHERE clause with numbered placeholders. Each ?
// in a clause consumes one argument.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, args ...any) {
	var b strings.Builder
	next := 0
	for _, r := range clause {
		if r == '?' && next < len(args) {
			c.args = append(c.args, args[next])
			next++
			fmt.Fprintf(&b, "$%d", len(c.args))
			continue
		}
		b.WriteRune(r)
	}
	c.clauses = append(c.clauses, b.String())
}

// search matches term case-insensitively against any of the columns
func (c *conditions) search(term string, columns ...string) {
	if term == "" {
		return
	}
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE ?"
		args[i] = "%" + term + "%"
	}
	c.add("("+strings.Join(parts, " OR ")+")", args...)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// paged appends LIMIT/OFFSET placeholders for page and returns the args
func (c *conditions) paged(page domain.Page) (string, []any) {
	page = page.Normalize()
	args := append(append([]any{}, c.args...), page.Limit(), page.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(c.args)+1, len(c.args)+2), args
}

func (c *conditions) count(ctx context.Context, q queryer, from string) (int32, error) {
	var total int32
	err := q.QueryRowContext(ctx, "SELECT count(*) FROM "+from+c.where(), c.args...).Scan(&total)
	return total, err
}

// insertGated inserts a gated entity and, when gate is set, its pending
// moderation entry in the same transaction
func insertGated(ctx context.Context, db *sql.DB, gate *domain.ModerationEntry, insert func(tx *sql.Tx) (int32, error)) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := insert(tx)
	if err != nil {
		return mapError(err)
	}

	if gate != nil {
		gate.ObjectID = id
		if err := insertModerationEntry(ctx, tx, gate); err != nil {
			return mapError(err)
		}
	}

	return tx.Commit()
}

// uniqueSlug picks a free slug derived from base in table
func uniqueSlug(ctx context.Context, q queryer, table, base string) (string, error) {
	rows, err := q.QueryContext(ctx, "SELECT slug FROM "+table+" WHERE slug = $1 OR slug LIKE $2", base, base+"-%")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return "", err
		}
		taken = append(taken, s)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return utils.UniqueSlug(base, taken), nil
}
