package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/utils"
)

type forumRepository struct {
	db *sql.DB
}

func NewForumRepository(db *sql.DB) repository.ForumRepository {
	return &forumRepository{db: db}
}

const postColumns = `p.id, p.author_id, o.name, p.title, p.slug, p.content, p.category_id, p.status,
	p.is_pinned, p.is_locked, p.view_count,
	(SELECT count(*) FROM forum_comments c WHERE c.post_id = p.id AND c.status = 'APPROVED'),
	p.created_at, p.updated_at`

const postFrom = `forum_posts p JOIN member_organizations o ON o.id = p.author_id`

func scanPost(row interface{ Scan(...any) error }) (*domain.ForumPost, error) {
	p := &domain.ForumPost{}
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.PostTitle, &p.Slug, &p.Content, &p.CategoryID, &p.Status,
		&p.IsPinned, &p.IsLocked, &p.ViewCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]domain.ForumPost, error) {
	defer rows.Close()
	var posts []domain.ForumPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *forumRepository) ListCategories(ctx context.Context) ([]domain.ForumCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug, COALESCE(description, ''), "order" FROM forum_categories ORDER BY "order", name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.ForumCategory
	for rows.Next() {
		var c domain.ForumCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Order); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *forumRepository) ListApprovedPosts(ctx context.Context, f domain.ForumPostFilter) ([]domain.ForumPost, int32, error) {
	var c conditions
	c.add("p.status = 'APPROVED'")
	if f.CategoryID != nil {
		c.add("p.category_id = ?", *f.CategoryID)
	}
	if f.IsPinned != nil {
		c.add("p.is_pinned = ?", *f.IsPinned)
	}
	c.search(f.Search, "p.title", "p.content")

	total, err := c.count(ctx, r.db, postFrom)
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM `+postFrom+c.where()+` ORDER BY p.is_pinned DESC, p.created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	posts, err := scanPosts(rows)
	return posts, total, err
}

func (r *forumRepository) ListPostsByAuthor(ctx context.Context, authorID int32) ([]domain.ForumPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM `+postFrom+` WHERE p.author_id = $1 ORDER BY p.created_at DESC`, authorID)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *forumRepository) GetPostByID(ctx context.Context, id int32) (*domain.ForumPost, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM `+postFrom+` WHERE p.id = $1`, id))
	return p, mapError(err)
}

func (r *forumRepository) ViewApprovedPost(ctx context.Context, slug string) (*domain.ForumPost, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE forum_posts SET view_count = view_count + 1 WHERE slug = $1 AND status = 'APPROVED'`, slug)
	if err != nil {
		return nil, err
	}
	if err := expectOneRow(res, domain.ErrNotFound); err != nil {
		return nil, err
	}
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM `+postFrom+` WHERE p.slug = $1`, slug))
	return p, mapError(err)
}

func (r *forumRepository) CreatePost(ctx context.Context, p *domain.ForumPost, gate *domain.ModerationEntry) error {
	return insertGated(ctx, r.db, gate, func(tx *sql.Tx) (int32, error) {
		slug, err := uniqueSlug(ctx, tx, "forum_posts", utils.Slugify(p.PostTitle))
		if err != nil {
			return 0, err
		}
		p.Slug = slug
		now := time.Now().UTC()
		p.CreatedAt = now
		p.UpdatedAt = now

		query := `INSERT INTO forum_posts (author_id, title, slug, content, category_id, status, is_pinned, is_locked, view_count, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, false, false, 0, $7, $7) RETURNING id`
		err = tx.QueryRowContext(ctx, query, p.AuthorID, p.PostTitle, p.Slug, p.Content, p.CategoryID, p.Status, now).Scan(&p.ID)
		return p.ID, err
	})
}

func (r *forumRepository) ListApprovedComments(ctx context.Context, postID int32) ([]domain.ForumComment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.author_id, o.name, c.content, c.status, c.parent_id, c.created_at, c.updated_at
		 FROM forum_comments c JOIN member_organizations o ON o.id = c.author_id
		 WHERE c.post_id = $1 AND c.status = 'APPROVED'
		 ORDER BY c.created_at`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.ForumComment
	for rows.Next() {
		var c domain.ForumComment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.Status, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *forumRepository) CreateComment(ctx context.Context, c *domain.ForumComment, gate *domain.ModerationEntry) error {
	return insertGated(ctx, r.db, gate, func(tx *sql.Tx) (int32, error) {
		now := time.Now().UTC()
		c.CreatedAt = now
		c.UpdatedAt = now
		query := `INSERT INTO forum_comments (post_id, author_id, content, status, parent_id, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
		err := tx.QueryRowContext(ctx, query, c.PostID, c.AuthorID, c.Content, c.Status, c.ParentID, now).Scan(&c.ID)
		return c.ID, err
	})
}
