package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/utils"
)

type resourceRepository struct {
	db *sql.DB
}

func NewResourceRepository(db *sql.DB) repository.ResourceRepository {
	return &resourceRepository{db: db}
}

const resourceColumns = `id, title, slug, description, category_id, resource_type, COALESCE(file, ''),
	COALESCE(external_url, ''), COALESCE(thumbnail, ''), "order", is_featured, published_date, uploaded_by,
	is_approved, download_count, created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (*domain.Resource, error) {
	r := &domain.Resource{}
	err := row.Scan(&r.ID, &r.ResourceTitle, &r.Slug, &r.Description, &r.CategoryID, &r.ResourceType, &r.FileKey,
		&r.ExternalURL, &r.ThumbnailKey, &r.Order, &r.IsFeatured, &r.PublishedDate, &r.UploadedBy,
		&r.IsApproved, &r.DownloadCount, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanResources(rows *sql.Rows) ([]domain.Resource, error) {
	defer rows.Close()
	var out []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *resourceRepository) ListCategories(ctx context.Context) ([]domain.ResourceCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, COALESCE(description, ''), COALESCE(icon, ''), "order" FROM resource_categories ORDER BY "order", name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.ResourceCategory
	for rows.Next() {
		var c domain.ResourceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Order); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *resourceRepository) ListApproved(ctx context.Context, f domain.ResourceFilter) ([]domain.Resource, int32, error) {
	var c conditions
	c.add("is_approved = true")
	if f.CategoryID != nil {
		c.add("category_id = ?", *f.CategoryID)
	}
	if f.ResourceType != "" {
		c.add("resource_type = ?", f.ResourceType)
	}
	if f.IsFeatured != nil {
		c.add("is_featured = ?", *f.IsFeatured)
	}
	c.search(f.Search, "title", "description")

	total, err := c.count(ctx, r.db, "resources")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+resourceColumns+` FROM resources`+c.where()+` ORDER BY is_featured DESC, published_date DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := scanResources(rows)
	return out, total, err
}

func (r *resourceRepository) ListByUploader(ctx context.Context, orgID int32) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE uploaded_by = $1 ORDER BY published_date DESC`, orgID)
	if err != nil {
		return nil, err
	}
	return scanResources(rows)
}

func (r *resourceRepository) Create(ctx context.Context, res *domain.Resource, gate *domain.ModerationEntry) error {
	return insertGated(ctx, r.db, gate, func(tx *sql.Tx) (int32, error) {
		slug, err := uniqueSlug(ctx, tx, "resources", utils.Slugify(res.ResourceTitle))
		if err != nil {
			return 0, err
		}
		res.Slug = slug
		now := time.Now().UTC()
		res.PublishedDate = now
		res.CreatedAt = now
		res.UpdatedAt = now
		query := `INSERT INTO resources (title, slug, description, category_id, resource_type, file, external_url, thumbnail,
		              "order", is_featured, published_date, uploaded_by, is_approved, download_count, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, false, $9, $10, $11, 0, $9, $9) RETURNING id`
		err = tx.QueryRowContext(ctx, query, res.ResourceTitle, res.Slug, res.Description, res.CategoryID, res.ResourceType,
			res.FileKey, res.ExternalURL, res.ThumbnailKey, now, res.UploadedBy, res.IsApproved).Scan(&res.ID)
		return res.ID, err
	})
}

func (r *resourceRepository) TrackDownload(ctx context.Context, id int32) (*domain.Resource, error) {
	res, err := scanResource(r.db.QueryRowContext(ctx,
		`UPDATE resources SET download_count = download_count + 1 WHERE id = $1 AND is_approved = true
		 RETURNING `+resourceColumns, id))
	return res, mapError(err)
}

type faqRepository struct {
	db *sql.DB
}

func NewFAQRepository(db *sql.DB) repository.FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) ListCategories(ctx context.Context) ([]domain.FAQCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug, "order" FROM faq_categories ORDER BY "order", name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.FAQCategory
	for rows.Next() {
		var c domain.FAQCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Order); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *faqRepository) ListPublished(ctx context.Context, f domain.FAQFilter) ([]domain.FAQ, int32, error) {
	var c conditions
	c.add("is_published = true")
	if f.CategoryID != nil {
		c.add("category_id = ?", *f.CategoryID)
	}
	c.search(f.Search, "question", "answer")

	total, err := c.count(ctx, r.db, "faqs")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, answer, category_id, "order", is_published, COALESCE(attachment, ''), COALESCE(image, ''),
		        view_count, created_at
		 FROM faqs`+c.where()+` ORDER BY "order", id`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var faqs []domain.FAQ
	for rows.Next() {
		var q domain.FAQ
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.CategoryID, &q.Order, &q.IsPublished, &q.AttachmentKey,
			&q.ImageKey, &q.ViewCount, &q.CreatedAt); err != nil {
			return nil, 0, err
		}
		faqs = append(faqs, q)
	}
	return faqs, total, rows.Err()
}
