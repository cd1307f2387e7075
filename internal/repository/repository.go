package repository

import (
	"context"
	"time"

	"ngoforum-backend/internal/domain"
)

// List methods return the page of rows plus the total count matching the filter.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.MemberOrganization, error)
	GetBySlug(ctx context.Context, slug string) (*domain.MemberOrganization, error)
	ListActive(ctx context.Context, filter domain.OrganizationFilter) ([]domain.MemberOrganization, int32, error)
	UpdateProfile(ctx context.Context, id int32, update *domain.OrganizationProfileUpdate) error
	UpdateStatus(ctx context.Context, id int32, status domain.OrgStatus) error

	AddContact(ctx context.Context, contact *domain.OrganizationContact) error
	ListContacts(ctx context.Context, orgID int32) ([]domain.OrganizationContact, error)

	// Membership expiry batch
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.MemberOrganization, error)
	ListExpiredBefore(ctx context.Context, day time.Time) ([]domain.MemberOrganization, error)
	Deactivate(ctx context.Context, id int32) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.MembershipApplication) error
	GetByID(ctx context.Context, id int32) (*domain.MembershipApplication, error)
	List(ctx context.Context, status domain.ApplicationStatus, page domain.Page) ([]domain.MembershipApplication, int32, error)
	ListByEmail(ctx context.Context, email string) ([]domain.MembershipApplication, error)
	// Approve creates the organization and its owner account and links them to
	// the application in one transaction. Only undecided applications qualify.
	Approve(ctx context.Context, appID int32, org *domain.MemberOrganization, owner *domain.User, notes string, at time.Time) error
	Reject(ctx context.Context, appID int32, notes string, at time.Time) error
}

// MembershipRenewal mutates the locked organization row when a payment completes
type MembershipRenewal func(org *domain.MemberOrganization)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.MembershipPayment) error
	GetByID(ctx context.Context, id int32) (*domain.MembershipPayment, error)
	List(ctx context.Context, orgID *int32, page domain.Page) ([]domain.MembershipPayment, int32, error)
	// UpdateStatus moves a payment from one status to another. ErrInvalidState
	// when the row is no longer in the from status.
	UpdateStatus(ctx context.Context, id int32, from, to domain.PaymentStatus) error
	// Complete marks a pending payment COMPLETED and applies renew to the
	// paying organization in the same transaction.
	Complete(ctx context.Context, id int32, renew MembershipRenewal) (*domain.MemberOrganization, error)
}

type ModerationRepository interface {
	Create(ctx context.Context, entry *domain.ModerationEntry) error
	GetByID(ctx context.Context, id int32) (*domain.ModerationEntry, error)
	GetPendingByRef(ctx context.Context, ref domain.ContentRef) (*domain.ModerationEntry, error)
	List(ctx context.Context, filter domain.ModerationFilter) ([]domain.ModerationEntry, int32, error)
	// Decide stamps a pending entry and writes the outcome onto the referenced
	// entity atomically.
	Decide(ctx context.Context, id int32, decision domain.ModerationDecision) (*domain.ModerationEntry, error)
}

// Published listings are approved and active.
// Gated create methods take the moderation entry to enqueue alongside the
// entity. A nil gate means the content was auto-approved.

type ForumRepository interface {
	ListCategories(ctx context.Context) ([]domain.ForumCategory, error)
	ListApprovedPosts(ctx context.Context, filter domain.ForumPostFilter) ([]domain.ForumPost, int32, error)
	ListPostsByAuthor(ctx context.Context, authorID int32) ([]domain.ForumPost, error)
	GetPostByID(ctx context.Context, id int32) (*domain.ForumPost, error)
	// ViewApprovedPost loads an approved post by slug and bumps its view count
	ViewApprovedPost(ctx context.Context, slug string) (*domain.ForumPost, error)
	CreatePost(ctx context.Context, post *domain.ForumPost, gate *domain.ModerationEntry) error
	ListApprovedComments(ctx context.Context, postID int32) ([]domain.ForumComment, error)
	CreateComment(ctx context.Context, comment *domain.ForumComment, gate *domain.ModerationEntry) error
}

// ReminderTarget is one attendee to remind about an event
type ReminderTarget struct {
	Event      domain.Event
	Attendance domain.EventAttendance
}

type EventRepository interface {
	ListApproved(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int32, error)
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	ListByCreator(ctx context.Context, orgID int32) ([]domain.Event, error)
	Create(ctx context.Context, event *domain.Event, gate *domain.ModerationEntry) error
	// Register inserts the attendance unless the event is at capacity, in
	// which case it returns ErrInvalidState
	Register(ctx context.Context, attendance *domain.EventAttendance) error
	ListAttendancesByOrg(ctx context.Context, orgID int32) ([]domain.EventAttendance, error)
	ListReminderTargets(ctx context.Context, day time.Time) ([]ReminderTarget, error)
}

type JobRepository interface {
	ListPublished(ctx context.Context, filter domain.JobFilter) ([]domain.JobAdvertisement, int32, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.JobAdvertisement, error)
	Create(ctx context.Context, job *domain.JobAdvertisement, gate *domain.ModerationEntry) error
}

type TrainingRepository interface {
	ListPublished(ctx context.Context, filter domain.TrainingFilter) ([]domain.Training, int32, error)
	ListBySubmitter(ctx context.Context, orgID int32) ([]domain.Training, error)
	Create(ctx context.Context, training *domain.Training, gate *domain.ModerationEntry) error
}

type TenderRepository interface {
	ListPublished(ctx context.Context, filter domain.TenderFilter) ([]domain.TenderAdvertisement, int32, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.TenderAdvertisement, error)
	Create(ctx context.Context, tender *domain.TenderAdvertisement, gate *domain.ModerationEntry) error
}

type ResourceRepository interface {
	ListCategories(ctx context.Context) ([]domain.ResourceCategory, error)
	ListApproved(ctx context.Context, filter domain.ResourceFilter) ([]domain.Resource, int32, error)
	ListByUploader(ctx context.Context, orgID int32) ([]domain.Resource, error)
	Create(ctx context.Context, resource *domain.Resource, gate *domain.ModerationEntry) error
	// TrackDownload bumps the download counter of an approved resource
	TrackDownload(ctx context.Context, id int32) (*domain.Resource, error)
}

type FAQRepository interface {
	ListCategories(ctx context.Context) ([]domain.FAQCategory, error)
	ListPublished(ctx context.Context, filter domain.FAQFilter) ([]domain.FAQ, int32, error)
}

type PageRepository interface {
	ListPublished(ctx context.Context) ([]domain.SitePage, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.SitePage, error)
}

type AnnouncementRepository interface {
	// ListActive returns announcements active at now, highest priority first.
	// Members-only announcements are left out unless includeMembersOnly.
	ListActive(ctx context.Context, now time.Time, includeMembersOnly bool) ([]domain.Announcement, error)
}

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	GetByID(ctx context.Context, id int32) (*domain.ContactMessage, error)
	List(ctx context.Context, filter domain.ContactMessageFilter) ([]domain.ContactMessage, int32, error)
	UpdateStatus(ctx context.Context, msg *domain.ContactMessage) error
}

type PresenceRepository interface {
	ListStates(ctx context.Context) ([]domain.State, error)
	ListCounties(ctx context.Context, stateID *int32) ([]domain.County, error)
	ListSectors(ctx context.Context) ([]domain.Sector, error)
	// ListActive pages when filter.PageSize > 0 and returns every match otherwise
	ListActive(ctx context.Context, filter domain.PresenceFilter) ([]domain.OperationalPresence, int32, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.OperationalPresence, error)
	Create(ctx context.Context, presence *domain.OperationalPresence) error
	Delete(ctx context.Context, id, orgID int32) error
}

// Viewer scopes security listings: staff see everything, members their own
// organization's records plus whatever the table marks as shareable
type Viewer struct {
	IsStaff bool
	OrgID   int32
}

type IncidentRepository interface {
	CreateIncident(ctx context.Context, incident *domain.SecurityIncident) error
	GetIncident(ctx context.Context, id int32, viewer Viewer) (*domain.SecurityIncident, error)
	ListIncidents(ctx context.Context, filter domain.IncidentFilter, viewer Viewer) ([]domain.SecurityIncident, int32, error)
	UpdateIncident(ctx context.Context, incident *domain.SecurityIncident) error

	CreateConstraint(ctx context.Context, constraint *domain.AccessConstraint) error
	GetConstraint(ctx context.Context, id int32, viewer Viewer) (*domain.AccessConstraint, error)
	ListConstraints(ctx context.Context, filter domain.ConstraintFilter, viewer Viewer) ([]domain.AccessConstraint, int32, error)
	UpdateConstraint(ctx context.Context, constraint *domain.AccessConstraint) error
}
