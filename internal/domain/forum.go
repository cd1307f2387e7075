package domain

import "time"

type ForumCategory struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Order       int32  `json:"order"`
}

type ForumPost struct {
	ID           int32         `json:"id"`
	AuthorID     int32         `json:"author"`
	AuthorName   string        `json:"author_name"`
	PostTitle    string        `json:"title"`
	Slug         string        `json:"slug"`
	Content      string        `json:"content"`
	CategoryID   *int32        `json:"category"`
	Status       ContentStatus `json:"status"`
	IsPinned     bool          `json:"is_pinned"`
	IsLocked     bool          `json:"is_locked"`
	ViewCount    int32         `json:"view_count"`
	CommentCount int32         `json:"comment_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (p *ForumPost) ContentRef() ContentRef {
	return ContentRef{Kind: ContentKindForumPost, ObjectID: p.ID}
}
func (p *ForumPost) Owner() int32  { return p.AuthorID }
func (p *ForumPost) Title() string { return p.PostTitle }
func (p *ForumPost) ApplyModeration(status ModerationStatus) {
	p.Status = ContentStatusFor(status)
}

type ForumComment struct {
	ID         int32         `json:"id"`
	PostID     int32         `json:"post"`
	AuthorID   int32         `json:"author"`
	AuthorName string        `json:"author_name"`
	Content    string        `json:"content"`
	Status     ContentStatus `json:"status"`
	ParentID   *int32        `json:"parent"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (c *ForumComment) ContentRef() ContentRef {
	return ContentRef{Kind: ContentKindForumComment, ObjectID: c.ID}
}
func (c *ForumComment) Owner() int32  { return c.AuthorID }
func (c *ForumComment) Title() string { return "comment" }
func (c *ForumComment) ApplyModeration(status ModerationStatus) {
	c.Status = ContentStatusFor(status)
}

type ForumPostFilter struct {
	CategoryID *int32
	IsPinned   *bool
	Search     string
	Page
}
