package service

import (
	"context"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.MemberOrganization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberOrganization), args.Error(1)
}
func (m *MockOrganizationRepo) GetBySlug(ctx context.Context, slug string) (*domain.MemberOrganization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberOrganization), args.Error(1)
}
func (m *MockOrganizationRepo) ListActive(ctx context.Context, filter domain.OrganizationFilter) ([]domain.MemberOrganization, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.MemberOrganization), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrganizationRepo) UpdateProfile(ctx context.Context, id int32, update *domain.OrganizationProfileUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}
func (m *MockOrganizationRepo) UpdateStatus(ctx context.Context, id int32, status domain.OrgStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOrganizationRepo) AddContact(ctx context.Context, contact *domain.OrganizationContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}
func (m *MockOrganizationRepo) ListContacts(ctx context.Context, orgID int32) ([]domain.OrganizationContact, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.OrganizationContact), args.Error(1)
}
func (m *MockOrganizationRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.MemberOrganization, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.MemberOrganization), args.Error(1)
}
func (m *MockOrganizationRepo) ListExpiredBefore(ctx context.Context, day time.Time) ([]domain.MemberOrganization, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.MemberOrganization), args.Error(1)
}
func (m *MockOrganizationRepo) Deactivate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.MembershipApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.MembershipApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipApplication), args.Error(1)
}
func (m *MockApplicationRepo) List(ctx context.Context, status domain.ApplicationStatus, page domain.Page) ([]domain.MembershipApplication, int32, error) {
	args := m.Called(ctx, status, page)
	return args.Get(0).([]domain.MembershipApplication), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ListByEmail(ctx context.Context, email string) ([]domain.MembershipApplication, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.MembershipApplication), args.Error(1)
}
func (m *MockApplicationRepo) Approve(ctx context.Context, appID int32, org *domain.MemberOrganization, owner *domain.User, notes string, at time.Time) error {
	args := m.Called(ctx, appID, org, owner, notes, at)
	return args.Error(0)
}
func (m *MockApplicationRepo) Reject(ctx context.Context, appID int32, notes string, at time.Time) error {
	args := m.Called(ctx, appID, notes, at)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.MembershipPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.MembershipPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipPayment), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context, orgID *int32, page domain.Page) ([]domain.MembershipPayment, int32, error) {
	args := m.Called(ctx, orgID, page)
	return args.Get(0).([]domain.MembershipPayment), args.Get(1).(int32), args.Error(2)
}
func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.PaymentStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockPaymentRepo) Complete(ctx context.Context, id int32, renew repository.MembershipRenewal) (*domain.MemberOrganization, error) {
	args := m.Called(ctx, id, renew)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberOrganization), args.Error(1)
}

// MockModerationRepo
type MockModerationRepo struct {
	mock.Mock
}

func (m *MockModerationRepo) Create(ctx context.Context, entry *domain.ModerationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockModerationRepo) GetByID(ctx context.Context, id int32) (*domain.ModerationEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationEntry), args.Error(1)
}
func (m *MockModerationRepo) GetPendingByRef(ctx context.Context, ref domain.ContentRef) (*domain.ModerationEntry, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationEntry), args.Error(1)
}
func (m *MockModerationRepo) List(ctx context.Context, filter domain.ModerationFilter) ([]domain.ModerationEntry, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ModerationEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockModerationRepo) Decide(ctx context.Context, id int32, decision domain.ModerationDecision) (*domain.ModerationEntry, error) {
	args := m.Called(ctx, id, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationEntry), args.Error(1)
}

// MockForumRepo
type MockForumRepo struct {
	mock.Mock
}

func (m *MockForumRepo) ListCategories(ctx context.Context) ([]domain.ForumCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ForumCategory), args.Error(1)
}
func (m *MockForumRepo) ListApprovedPosts(ctx context.Context, filter domain.ForumPostFilter) ([]domain.ForumPost, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ForumPost), args.Get(1).(int32), args.Error(2)
}
func (m *MockForumRepo) ListPostsByAuthor(ctx context.Context, authorID int32) ([]domain.ForumPost, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.ForumPost), args.Error(1)
}
func (m *MockForumRepo) GetPostByID(ctx context.Context, id int32) (*domain.ForumPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumPost), args.Error(1)
}
func (m *MockForumRepo) ViewApprovedPost(ctx context.Context, slug string) (*domain.ForumPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumPost), args.Error(1)
}
func (m *MockForumRepo) CreatePost(ctx context.Context, post *domain.ForumPost, gate *domain.ModerationEntry) error {
	args := m.Called(ctx, post, gate)
	return args.Error(0)
}
func (m *MockForumRepo) ListApprovedComments(ctx context.Context, postID int32) ([]domain.ForumComment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]domain.ForumComment), args.Error(1)
}
func (m *MockForumRepo) CreateComment(ctx context.Context, comment *domain.ForumComment, gate *domain.ModerationEntry) error {
	args := m.Called(ctx, comment, gate)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) ListApproved(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) ListByCreator(ctx context.Context, orgID int32) ([]domain.Event, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event, gate *domain.ModerationEntry) error {
	args := m.Called(ctx, event, gate)
	return args.Error(0)
}
func (m *MockEventRepo) Register(ctx context.Context, attendance *domain.EventAttendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}
func (m *MockEventRepo) ListAttendancesByOrg(ctx context.Context, orgID int32) ([]domain.EventAttendance, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.EventAttendance), args.Error(1)
}
func (m *MockEventRepo) ListReminderTargets(ctx context.Context, day time.Time) ([]repository.ReminderTarget, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]repository.ReminderTarget), args.Error(1)
}

// MockPresenceRepo
type MockPresenceRepo struct {
	mock.Mock
}

func (m *MockPresenceRepo) ListStates(ctx context.Context) ([]domain.State, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.State), args.Error(1)
}
func (m *MockPresenceRepo) ListCounties(ctx context.Context, stateID *int32) ([]domain.County, error) {
	args := m.Called(ctx, stateID)
	return args.Get(0).([]domain.County), args.Error(1)
}
func (m *MockPresenceRepo) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Sector), args.Error(1)
}
func (m *MockPresenceRepo) ListActive(ctx context.Context, filter domain.PresenceFilter) ([]domain.OperationalPresence, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.OperationalPresence), args.Get(1).(int32), args.Error(2)
}
func (m *MockPresenceRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.OperationalPresence, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.OperationalPresence), args.Error(1)
}
func (m *MockPresenceRepo) Create(ctx context.Context, presence *domain.OperationalPresence) error {
	args := m.Called(ctx, presence)
	return args.Error(0)
}
func (m *MockPresenceRepo) Delete(ctx context.Context, id, orgID int32) error {
	args := m.Called(ctx, id, orgID)
	return args.Error(0)
}

// MockIncidentRepo
type MockIncidentRepo struct {
	mock.Mock
}

func (m *MockIncidentRepo) CreateIncident(ctx context.Context, incident *domain.SecurityIncident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}
func (m *MockIncidentRepo) GetIncident(ctx context.Context, id int32, viewer repository.Viewer) (*domain.SecurityIncident, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecurityIncident), args.Error(1)
}
func (m *MockIncidentRepo) ListIncidents(ctx context.Context, filter domain.IncidentFilter, viewer repository.Viewer) ([]domain.SecurityIncident, int32, error) {
	args := m.Called(ctx, filter, viewer)
	return args.Get(0).([]domain.SecurityIncident), args.Get(1).(int32), args.Error(2)
}
func (m *MockIncidentRepo) UpdateIncident(ctx context.Context, incident *domain.SecurityIncident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}
func (m *MockIncidentRepo) CreateConstraint(ctx context.Context, constraint *domain.AccessConstraint) error {
	args := m.Called(ctx, constraint)
	return args.Error(0)
}
func (m *MockIncidentRepo) GetConstraint(ctx context.Context, id int32, viewer repository.Viewer) (*domain.AccessConstraint, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessConstraint), args.Error(1)
}
func (m *MockIncidentRepo) ListConstraints(ctx context.Context, filter domain.ConstraintFilter, viewer repository.Viewer) ([]domain.AccessConstraint, int32, error) {
	args := m.Called(ctx, filter, viewer)
	return args.Get(0).([]domain.AccessConstraint), args.Get(1).(int32), args.Error(2)
}
func (m *MockIncidentRepo) UpdateConstraint(ctx context.Context, constraint *domain.AccessConstraint) error {
	args := m.Called(ctx, constraint)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(ctx context.Context, email, orgName, tempPassword string) error {
	args := m.Called(ctx, email, orgName, tempPassword)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationRejected(ctx context.Context, email, orgName, notes string) error {
	args := m.Called(ctx, email, orgName, notes)
	return args.Error(0)
}
func (m *MockEmailService) SendMembershipExpiring(ctx context.Context, email, orgName string, daysLeft int, expiry time.Time) error {
	args := m.Called(ctx, email, orgName, daysLeft, expiry)
	return args.Error(0)
}
func (m *MockEmailService) SendMembershipDeactivated(ctx context.Context, email, orgName string) error {
	args := m.Called(ctx, email, orgName)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentCompleted(ctx context.Context, email, orgName string, expiry time.Time) error {
	args := m.Called(ctx, email, orgName, expiry)
	return args.Error(0)
}
func (m *MockEmailService) SendContentDecision(ctx context.Context, email, orgName string, kind domain.ContentKind, approved bool, notes string) error {
	args := m.Called(ctx, email, orgName, kind, approved, notes)
	return args.Error(0)
}
func (m *MockEmailService) SendEventReminder(ctx context.Context, email, attendeeName string, event *domain.Event) error {
	args := m.Called(ctx, email, attendeeName, event)
	return args.Error(0)
}
func (m *MockEmailService) SendSecurityAlert(ctx context.Context, recipients []string, incident *domain.SecurityIncident) error {
	args := m.Called(ctx, recipients, incident)
	return args.Error(0)
}

// MockFileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockFileStore) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
