package service

import (
	"context"
	"io"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/security"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, *security.TokenPair, error)
	RefreshToken(ctx context.Context, refresh string) (*security.TokenPair, error)
	Me(ctx context.Context, userID int32) (*domain.User, error)
}

// ModerationService drives the review queue for member-submitted content
type ModerationService interface {
	Submit(ctx context.Context, ref domain.ContentRef, orgID int32, notes string) (*domain.ModerationEntry, error)
	Approve(ctx context.Context, entryID, reviewerID int32, notes string) (*domain.ModerationEntry, error)
	Reject(ctx context.Context, entryID, reviewerID int32, notes string) (*domain.ModerationEntry, error)
	List(ctx context.Context, filter domain.ModerationFilter) ([]domain.ModerationEntry, int32, error)
	Get(ctx context.Context, id int32) (*domain.ModerationEntry, error)
}

type OrganizationService interface {
	ListMembers(ctx context.Context, filter domain.OrganizationFilter) ([]domain.MemberOrganization, int32, error)
	GetMember(ctx context.Context, slug string) (*domain.MemberOrganization, error)
	GetProfile(ctx context.Context, caller domain.Principal) (*domain.MemberOrganization, error)
	UpdateProfile(ctx context.Context, caller domain.Principal, update *domain.OrganizationProfileUpdate) (*domain.MemberOrganization, error)
	AddContact(ctx context.Context, caller domain.Principal, contact *domain.OrganizationContact) error
	SetStatus(ctx context.Context, orgID int32, status domain.OrgStatus) error
}

type ApplicationService interface {
	Submit(ctx context.Context, app *domain.MembershipApplication) error
	List(ctx context.Context, status domain.ApplicationStatus, page domain.Page) ([]domain.MembershipApplication, int32, error)
	ListByEmail(ctx context.Context, email string) ([]domain.MembershipApplication, error)
	Review(ctx context.Context, appID int32, approve bool, notes string) (*domain.MembershipApplication, error)
}

type PaymentService interface {
	Create(ctx context.Context, caller domain.Principal, payment *domain.MembershipPayment) error
	// List returns every payment for staff and the caller's own otherwise
	List(ctx context.Context, caller domain.Principal, page domain.Page) ([]domain.MembershipPayment, int32, error)
	// UpdateStatus applies the membership renewal when the payment completes
	UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus) (*domain.MembershipPayment, error)
}

type ForumService interface {
	ListCategories(ctx context.Context) ([]domain.ForumCategory, error)
	ListPosts(ctx context.Context, filter domain.ForumPostFilter) ([]domain.ForumPost, int32, error)
	GetPost(ctx context.Context, slug string) (*domain.ForumPost, error)
	ListComments(ctx context.Context, postID int32) ([]domain.ForumComment, error)
	CreatePost(ctx context.Context, orgID int32, post *domain.ForumPost) error
	ListMyPosts(ctx context.Context, orgID int32) ([]domain.ForumPost, error)
	CreateComment(ctx context.Context, orgID int32, comment *domain.ForumComment) error
}

type EventService interface {
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int32, error)
	Get(ctx context.Context, id int32) (*domain.Event, error)
	Create(ctx context.Context, orgID int32, event *domain.Event) error
	ListMine(ctx context.Context, orgID int32) ([]domain.Event, error)
	Register(ctx context.Context, orgID int32, attendance *domain.EventAttendance) error
	ListMyAttendances(ctx context.Context, orgID int32) ([]domain.EventAttendance, error)
}

// PostingService covers jobs, trainings and tenders
type PostingService interface {
	ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.JobAdvertisement, int32, error)
	CreateJob(ctx context.Context, orgID int32, job *domain.JobAdvertisement) error
	ListMyJobs(ctx context.Context, orgID int32) ([]domain.JobAdvertisement, error)

	ListTrainings(ctx context.Context, filter domain.TrainingFilter) ([]domain.Training, int32, error)
	CreateTraining(ctx context.Context, orgID int32, training *domain.Training) error
	ListMyTrainings(ctx context.Context, orgID int32) ([]domain.Training, error)

	ListTenders(ctx context.Context, filter domain.TenderFilter) ([]domain.TenderAdvertisement, int32, error)
	CreateTender(ctx context.Context, orgID int32, tender *domain.TenderAdvertisement) error
	ListMyTenders(ctx context.Context, orgID int32) ([]domain.TenderAdvertisement, error)
}

type ResourceService interface {
	ListCategories(ctx context.Context) ([]domain.ResourceCategory, error)
	List(ctx context.Context, filter domain.ResourceFilter) ([]domain.Resource, int32, error)
	TrackDownload(ctx context.Context, id int32) (*domain.Resource, error)
	Create(ctx context.Context, orgID int32, resource *domain.Resource) error
	ListMine(ctx context.Context, orgID int32) ([]domain.Resource, error)

	ListFAQCategories(ctx context.Context) ([]domain.FAQCategory, error)
	ListFAQs(ctx context.Context, filter domain.FAQFilter) ([]domain.FAQ, int32, error)
}

type PresenceService interface {
	ListStates(ctx context.Context) ([]domain.State, error)
	ListCounties(ctx context.Context, stateID *int32) ([]domain.County, error)
	ListSectors(ctx context.Context) ([]domain.Sector, error)
	List(ctx context.Context, filter domain.PresenceFilter) ([]domain.OperationalPresence, int32, error)
	// ExportCSV writes every record matching filter, ignoring pagination
	ExportCSV(ctx context.Context, filter domain.PresenceFilter, w io.Writer) error
	Create(ctx context.Context, orgID int32, presence *domain.OperationalPresence) error
	ListMine(ctx context.Context, orgID int32) ([]domain.OperationalPresence, error)
	Delete(ctx context.Context, orgID, id int32) error
}

type SecurityService interface {
	ReportIncident(ctx context.Context, caller domain.Principal, incident *domain.SecurityIncident) error
	ListIncidents(ctx context.Context, caller domain.Principal, filter domain.IncidentFilter) ([]domain.SecurityIncident, int32, error)
	GetIncident(ctx context.Context, caller domain.Principal, id int32) (*domain.SecurityIncident, error)
	UpdateIncident(ctx context.Context, id int32, status domain.IncidentStatus, followUp string) (*domain.SecurityIncident, error)

	ReportConstraint(ctx context.Context, caller domain.Principal, constraint *domain.AccessConstraint) error
	ListConstraints(ctx context.Context, caller domain.Principal, filter domain.ConstraintFilter) ([]domain.AccessConstraint, int32, error)
	GetConstraint(ctx context.Context, caller domain.Principal, id int32) (*domain.AccessConstraint, error)
	UpdateConstraint(ctx context.Context, id int32, status domain.ConstraintStatus, resolution string) (*domain.AccessConstraint, error)
}

// PageService serves the published site pages and announcements
type PageService interface {
	ListPages(ctx context.Context) ([]domain.SitePage, error)
	GetPage(ctx context.Context, slug string) (*domain.SitePage, error)
	// ListAnnouncements returns members-only announcements only to member
	// organizations and staff
	ListAnnouncements(ctx context.Context, caller domain.Principal) ([]domain.Announcement, error)
}

type ContactService interface {
	// Send stores a contact form message with status NEW
	Send(ctx context.Context, caller domain.Principal, msg *domain.ContactMessage) error
	List(ctx context.Context, filter domain.ContactMessageFilter) ([]domain.ContactMessage, int32, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ContactStatus, notes string) (*domain.ContactMessage, error)
}

type UploadService interface {
	RequestUpload(ctx context.Context, caller domain.Principal, req UploadRequest) (*UploadTicket, error)
	// AuthorizeDownload decides whether caller may read key. A zero
	// Principal stands for an anonymous caller.
	AuthorizeDownload(ctx context.Context, caller domain.Principal, key string) error
}

type EmailService interface {
	// Membership
	SendWelcome(ctx context.Context, email, orgName, tempPassword string) error
	SendApplicationRejected(ctx context.Context, email, orgName, notes string) error
	SendMembershipExpiring(ctx context.Context, email, orgName string, daysLeft int, expiry time.Time) error
	SendMembershipDeactivated(ctx context.Context, email, orgName string) error
	SendPaymentCompleted(ctx context.Context, email, orgName string, expiry time.Time) error

	// Content
	SendContentDecision(ctx context.Context, email, orgName string, kind domain.ContentKind, approved bool, notes string) error
	SendEventReminder(ctx context.Context, email, attendeeName string, event *domain.Event) error

	// Security
	SendSecurityAlert(ctx context.Context, recipients []string, incident *domain.SecurityIncident) error
}
