package domain

// Moderated is implemented by every entity that passes through the
// moderation queue. ApplyModeration moves the entity into the representation
// its own schema uses for the given status: an enum column for forum
// content, a boolean approval flag for everything else.
type Moderated interface {
	ContentRef() ContentRef
	Owner() int32
	Title() string
	ApplyModeration(status ModerationStatus)
}

// ContentStatus is the enum used by forum posts and comments
type ContentStatus string

const (
	ContentStatusPending  ContentStatus = "PENDING"
	ContentStatusApproved ContentStatus = "APPROVED"
	ContentStatusRejected ContentStatus = "REJECTED"
)

// ContentStatusFor maps a moderation outcome onto the forum status enum
func ContentStatusFor(status ModerationStatus) ContentStatus {
	switch status {
	case ModerationStatusApproved:
		return ContentStatusApproved
	case ModerationStatusRejected:
		return ContentStatusRejected
	}
	return ContentStatusPending
}

// ApprovalFlagFor maps a moderation outcome onto an is_approved flag.
// Pending content stays hidden.
func ApprovalFlagFor(status ModerationStatus) bool {
	return status == ModerationStatusApproved
}

// InitialModeration is the status fresh content starts in for an organization
func InitialModeration(org *MemberOrganization) ModerationStatus {
	if org.AutoApproveContent {
		return ModerationStatusApproved
	}
	return ModerationStatusPending
}
