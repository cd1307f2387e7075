package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ngoforum-backend/internal/domain"
)

type MockPageRepo struct {
	mock.Mock
}

func (m *MockPageRepo) ListPublished(ctx context.Context) ([]domain.SitePage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SitePage), args.Error(1)
}

func (m *MockPageRepo) GetPublishedBySlug(ctx context.Context, slug string) (*domain.SitePage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SitePage), args.Error(1)
}

type MockAnnouncementRepo struct {
	mock.Mock
}

func (m *MockAnnouncementRepo) ListActive(ctx context.Context, now time.Time, includeMembersOnly bool) ([]domain.Announcement, error) {
	args := m.Called(ctx, now, includeMembersOnly)
	return args.Get(0).([]domain.Announcement), args.Error(1)
}

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockContactRepo) GetByID(ctx context.Context, id int32) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *MockContactRepo) List(ctx context.Context, filter domain.ContactMessageFilter) ([]domain.ContactMessage, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ContactMessage), args.Get(1).(int32), args.Error(2)
}

func (m *MockContactRepo) UpdateStatus(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestPageService_GetPage(t *testing.T) {
	ctx := context.Background()

	t.Run("Trims Slug", func(t *testing.T) {
		pages := new(MockPageRepo)
		pages.On("GetPublishedBySlug", ctx, "about").Return(&domain.SitePage{Slug: "about"}, nil)

		svc := NewPageService(pages, new(MockAnnouncementRepo))
		page, err := svc.GetPage(ctx, " about ")
		require.NoError(t, err)
		assert.Equal(t, "about", page.Slug)
		pages.AssertExpectations(t)
	})

	t.Run("Empty Slug", func(t *testing.T) {
		pages := new(MockPageRepo)
		svc := NewPageService(pages, new(MockAnnouncementRepo))
		_, err := svc.GetPage(ctx, "  ")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		pages.AssertNotCalled(t, "GetPublishedBySlug", mock.Anything, mock.Anything)
	})
}

func TestPageService_ListAnnouncements(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 2, 9, 30, 0, 0, time.FixedZone("EAT", 3*3600))
	orgID := int32(6)
	zero := int32(0)

	tests := []struct {
		name    string
		caller  domain.Principal
		members bool
	}{
		{"Anonymous", domain.Principal{}, false},
		{"User Without Organization", domain.Principal{UserID: 4}, false},
		{"Zero Organization", domain.Principal{UserID: 4, OrgID: &zero}, false},
		{"Member", domain.Principal{UserID: 3, OrgID: &orgID}, true},
		{"Staff", domain.Principal{UserID: 1, IsStaff: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAnnouncementRepo)
			repo.On("ListActive", ctx, now.UTC(), tt.members).Return([]domain.Announcement{}, nil)

			svc := NewPageService(new(MockPageRepo), repo).(*pageService)
			svc.now = func() time.Time { return now }
			_, err := svc.ListAnnouncements(ctx, tt.caller)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestContactService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("Forces New", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Create", ctx, mock.MatchedBy(func(m *domain.ContactMessage) bool {
			return m.Status == domain.ContactStatusNew && m.RepliedAt == nil && m.ReplyNotes == "" && m.OrgID == nil
		})).Return(nil)

		replied := time.Now()
		spoofed := int32(12)
		msg := &domain.ContactMessage{
			Name:       " Deng ",
			Email:      "deng@example.org",
			Subject:    "Membership fees",
			Message:    "What are the fees for INGOs?",
			Status:     domain.ContactStatusArchived,
			RepliedAt:  &replied,
			ReplyNotes: "done",
			OrgID:      &spoofed,
		}
		require.NoError(t, NewContactService(repo).Send(ctx, domain.Principal{}, msg))
		assert.Equal(t, "Deng", msg.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Links Member Organization", func(t *testing.T) {
		orgID := int32(6)
		repo := new(MockContactRepo)
		repo.On("Create", ctx, mock.MatchedBy(func(m *domain.ContactMessage) bool {
			return m.OrgID != nil && *m.OrgID == orgID
		})).Return(nil)

		err := NewContactService(repo).Send(ctx, domain.Principal{UserID: 3, OrgID: &orgID}, &domain.ContactMessage{
			Name:    "Akol",
			Email:   "akol@hope.org",
			Subject: "Invoice",
			Message: "Please resend the invoice.",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := new(MockContactRepo)
		err := NewContactService(repo).Send(ctx, domain.Principal{}, &domain.ContactMessage{Email: "nope"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		for _, field := range []string{"name", "email", "subject", "message"} {
			assert.Contains(t, verr.Fields, field)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestContactService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(new(MockContactRepo))

	_, _, err := svc.List(ctx, domain.ContactMessageFilter{Status: "SPAM"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func TestContactService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

	t.Run("Replied Stamps Time", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("GetByID", ctx, int32(3)).Return(&domain.ContactMessage{ID: 3, Status: domain.ContactStatusRead}, nil)
		repo.On("UpdateStatus", ctx, mock.AnythingOfType("*domain.ContactMessage")).Return(nil)

		svc := NewContactService(repo).(*contactService)
		svc.now = func() time.Time { return now }
		msg, err := svc.UpdateStatus(ctx, 3, domain.ContactStatusReplied, "Called back")
		require.NoError(t, err)
		assert.Equal(t, domain.ContactStatusReplied, msg.Status)
		assert.Equal(t, "Called back", msg.ReplyNotes)
		require.NotNil(t, msg.RepliedAt)
		assert.Equal(t, now, *msg.RepliedAt)
		repo.AssertExpectations(t)
	})

	t.Run("Archive Keeps Reply", func(t *testing.T) {
		replied := now.Add(-time.Hour)
		repo := new(MockContactRepo)
		repo.On("GetByID", ctx, int32(3)).Return(&domain.ContactMessage{
			ID: 3, Status: domain.ContactStatusReplied, RepliedAt: &replied, ReplyNotes: "Called back",
		}, nil)
		repo.On("UpdateStatus", ctx, mock.AnythingOfType("*domain.ContactMessage")).Return(nil)

		msg, err := NewContactService(repo).UpdateStatus(ctx, 3, domain.ContactStatusArchived, "")
		require.NoError(t, err)
		assert.Equal(t, &replied, msg.RepliedAt)
		assert.Equal(t, "Called back", msg.ReplyNotes)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		repo := new(MockContactRepo)
		_, err := NewContactService(repo).UpdateStatus(ctx, 3, "SPAM", "")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("GetByID", ctx, int32(8)).Return(nil, domain.ErrNotFound)

		_, err := NewContactService(repo).UpdateStatus(ctx, 8, domain.ContactStatusRead, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
