package domain

import "time"

type ResourceType string

const (
	ResourceTypeDocument  ResourceType = "DOCUMENT"
	ResourceTypeTool      ResourceType = "TOOL"
	ResourceTypeLink      ResourceType = "LINK"
	ResourceTypeForm      ResourceType = "FORM"
	ResourceTypeVideo     ResourceType = "VIDEO"
	ResourceTypeGuideline ResourceType = "GUIDELINE"
	ResourceTypePolicy    ResourceType = "POLICY"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTypeDocument, ResourceTypeTool, ResourceTypeLink, ResourceTypeForm,
		ResourceTypeVideo, ResourceTypeGuideline, ResourceTypePolicy:
		return true
	}
	return false
}

type ResourceCategory struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int32  `json:"order"`
}

type Resource struct {
	ID            int32        `json:"id"`
	ResourceTitle string       `json:"title"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	CategoryID    *int32       `json:"category"`
	ResourceType  ResourceType `json:"resource_type"`
	FileKey       string       `json:"file"`
	ExternalURL   string       `json:"external_url"`
	ThumbnailKey  string       `json:"thumbnail"`
	Order         int32        `json:"order"`
	IsFeatured    bool         `json:"is_featured"`
	PublishedDate time.Time    `json:"published_date"`
	UploadedBy    *int32       `json:"uploaded_by"`
	IsApproved    bool         `json:"is_approved"`
	DownloadCount int32        `json:"download_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (r *Resource) ContentRef() ContentRef {
	return ContentRef{Kind: ContentKindResource, ObjectID: r.ID}
}
func (r *Resource) Owner() int32 {
	if r.UploadedBy == nil {
		return 0
	}
	return *r.UploadedBy
}
func (r *Resource) Title() string { return r.ResourceTitle }
func (r *Resource) ApplyModeration(status ModerationStatus) {
	r.IsApproved = ApprovalFlagFor(status)
}

type ResourceFilter struct {
	CategoryID   *int32
	ResourceType ResourceType
	IsFeatured   *bool
	Search       string
	Page
}

type FAQCategory struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Order int32  `json:"order"`
}

type FAQ struct {
	ID            int32     `json:"id"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	CategoryID    *int32    `json:"category"`
	Order         int32     `json:"order"`
	IsPublished   bool      `json:"is_published"`
	AttachmentKey string    `json:"attachment"`
	ImageKey      string    `json:"image"`
	ViewCount     int32     `json:"view_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type FAQFilter struct {
	CategoryID *int32
	Search     string
	Page
}
