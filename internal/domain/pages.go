package domain

import "time"

// SitePage is a static page such as About or Privacy
type SitePage struct {
	ID              int32     `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	MetaDescription string    `json:"meta_description"`
	Order           int32     `json:"order"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "LOW"
	AnnouncementPriorityMedium AnnouncementPriority = "MEDIUM"
	AnnouncementPriorityHigh   AnnouncementPriority = "HIGH"
	AnnouncementPriorityUrgent AnnouncementPriority = "URGENT"
)

type Announcement struct {
	ID                int32                `json:"id"`
	Title             string               `json:"title"`
	Content           string               `json:"content"`
	Priority          AnnouncementPriority `json:"priority"`
	IsPublished       bool                 `json:"is_published"`
	PublishDate       time.Time            `json:"publish_date"`
	ExpiryDate        *time.Time           `json:"expiry_date"`
	ShowToAll         bool                 `json:"show_to_all"`
	ShowToMembersOnly bool                 `json:"show_to_members_only"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "NEW"
	ContactStatusRead     ContactStatus = "READ"
	ContactStatusReplied  ContactStatus = "REPLIED"
	ContactStatusArchived ContactStatus = "ARCHIVED"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied, ContactStatusArchived:
		return true
	}
	return false
}

// ContactMessage is a message sent through the public contact form
type ContactMessage struct {
	ID         int32         `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Subject    string        `json:"subject"`
	Message    string        `json:"message"`
	OrgID      *int32        `json:"organization"`
	Status     ContactStatus `json:"status"`
	RepliedAt  *time.Time    `json:"replied_at"`
	ReplyNotes string        `json:"reply_notes"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type ContactMessageFilter struct {
	Status ContactStatus
	Page
}
