package domain

import "time"

// ContentKind tags every entity type that can sit in the moderation queue
type ContentKind string

const (
	ContentKindForumPost    ContentKind = "forum_post"
	ContentKindForumComment ContentKind = "forum_comment"
	ContentKindEvent        ContentKind = "event"
	ContentKindJob          ContentKind = "job"
	ContentKindResource     ContentKind = "resource"
	ContentKindTraining     ContentKind = "training"
	ContentKindTender       ContentKind = "tender"
)

// ContentKinds lists every moderatable kind
var ContentKinds = []ContentKind{
	ContentKindForumPost,
	ContentKindForumComment,
	ContentKindEvent,
	ContentKindJob,
	ContentKindResource,
	ContentKindTraining,
	ContentKindTender,
}

func (k ContentKind) Valid() bool {
	for _, known := range ContentKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Label is the human wording used in notification emails
func (k ContentKind) Label() string {
	switch k {
	case ContentKindForumPost:
		return "forum post"
	case ContentKindForumComment:
		return "forum comment"
	case ContentKindEvent:
		return "event"
	case ContentKindJob:
		return "job advertisement"
	case ContentKindResource:
		return "resource"
	case ContentKindTraining:
		return "training"
	case ContentKindTender:
		return "tender advertisement"
	}
	return string(k)
}

// ContentRef points at one gated entity
type ContentRef struct {
	Kind     ContentKind `json:"kind"`
	ObjectID int32       `json:"object_id"`
}

type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "PENDING"
	ModerationStatusApproved ModerationStatus = "APPROVED"
	ModerationStatusRejected ModerationStatus = "REJECTED"
)

func (s ModerationStatus) Valid() bool {
	return s == ModerationStatusPending || s == ModerationStatusApproved || s == ModerationStatusRejected
}

const DefaultRejectionNotes = "Content does not meet standards"

type ModerationEntry struct {
	ID              int32            `json:"id"`
	Kind            ContentKind      `json:"content_kind"`
	ObjectID        int32            `json:"object_id"`
	SubmittedBy     int32            `json:"submitted_by"`
	SubmissionNotes string           `json:"submission_notes"`
	Status          ModerationStatus `json:"moderation_status"`
	ReviewedBy      *int32           `json:"reviewed_by"`
	ReviewedAt      *time.Time       `json:"reviewed_at"`
	ReviewerNotes   string           `json:"reviewer_notes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (e *ModerationEntry) IsPending() bool {
	return e.Status == ModerationStatusPending
}

// NewPendingEntry builds the queue entry for a fresh submission. ObjectID is
// filled in by the repository once the gated entity has been inserted.
func NewPendingEntry(kind ContentKind, orgID int32, notes string) *ModerationEntry {
	return &ModerationEntry{
		Kind:            kind,
		SubmittedBy:     orgID,
		SubmissionNotes: notes,
		Status:          ModerationStatusPending,
	}
}

// ModerationDecision is the reviewer stamp applied to a pending entry
type ModerationDecision struct {
	Status     ModerationStatus
	ReviewerID int32
	Notes      string
	DecidedAt  time.Time
}

type ModerationFilter struct {
	Status ModerationStatus
	Kind   ContentKind
	Page
}
