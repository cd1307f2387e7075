package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
)

type pageRepository struct {
	db *sql.DB
}

func NewPageRepository(db *sql.DB) repository.PageRepository {
	return &pageRepository{db: db}
}

const pageColumns = `id, title, slug, content, COALESCE(meta_description, ''), "order", is_published, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (*domain.SitePage, error) {
	p := &domain.SitePage{}
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.MetaDescription, &p.Order, &p.IsPublished,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pageRepository) ListPublished(ctx context.Context) ([]domain.SitePage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE is_published = true ORDER BY "order", title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []domain.SitePage
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *p)
	}
	return pages, rows.Err()
}

func (r *pageRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.SitePage, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = $1 AND is_published = true`, slug)
	p, err := scanPage(row)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

type announcementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) repository.AnnouncementRepository {
	return &announcementRepository{db: db}
}

// priorityRank sorts URGENT above HIGH above MEDIUM above LOW
const priorityRank = `CASE priority WHEN 'URGENT' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 ELSE 0 END`

func (r *announcementRepository) ListActive(ctx context.Context, now time.Time, includeMembersOnly bool) ([]domain.Announcement, error) {
	var c conditions
	c.add("is_published = true")
	c.add("publish_date <= ?", now)
	c.add("(expiry_date IS NULL OR expiry_date >= ?)", now)
	if !includeMembersOnly {
		c.add("show_to_members_only = false")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, priority, is_published, publish_date, expiry_date, show_to_all,
		        show_to_members_only, created_at, updated_at
		 FROM announcements`+c.where()+` ORDER BY `+priorityRank+` DESC, publish_date DESC`, c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Priority, &a.IsPublished, &a.PublishDate, &a.ExpiryDate,
			&a.ShowToAll, &a.ShowToMembersOnly, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type contactMessageRepository struct {
	db *sql.DB
}

func NewContactMessageRepository(db *sql.DB) repository.ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

const contactColumns = `id, name, email, COALESCE(phone, ''), subject, message, organization_id, status, replied_at,
	COALESCE(reply_notes, ''), created_at, updated_at`

func scanContactMessage(row interface{ Scan(...any) error }) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{}
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.OrgID, &m.Status,
		&m.RepliedAt, &m.ReplyNotes, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *contactMessageRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	logger.EnterMethod("contactMessageRepository.Create", "subject", m.Subject)
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	query := `INSERT INTO contact_messages (name, email, phone, subject, message, organization_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, m.Name, m.Email, m.Phone, m.Subject, m.Message, m.OrgID, m.Status, now).
		Scan(&m.ID)
	if err != nil {
		logger.ExitMethodWithError("contactMessageRepository.Create", err)
		return mapError(err)
	}
	logger.ExitMethod("contactMessageRepository.Create", "messageID", m.ID)
	return nil
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id int32) (*domain.ContactMessage, error) {
	m, err := scanContactMessage(r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (r *contactMessageRepository) List(ctx context.Context, f domain.ContactMessageFilter) ([]domain.ContactMessage, int32, error) {
	var c conditions
	if f.Status != "" {
		c.add("status = ?", f.Status)
	}

	total, err := c.count(ctx, r.db, "contact_messages")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_messages`+c.where()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	return out, total, rows.Err()
}

func (r *contactMessageRepository) UpdateStatus(ctx context.Context, m *domain.ContactMessage) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_messages SET status = $1, replied_at = $2, reply_notes = $3, updated_at = $4 WHERE id = $5`,
		m.Status, m.RepliedAt, m.ReplyNotes, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrNotFound)
}
