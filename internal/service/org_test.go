package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ngoforum-backend/internal/domain"
)

func TestOrganizationService_ListMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid Member Type", func(t *testing.T) {
		svc := NewOrganizationService(new(MockOrganizationRepo), new(MockFileStore))
		_, _, err := svc.ListMembers(ctx, domain.OrganizationFilter{MemberType: "REGIONAL"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "member_type")
	})

	t.Run("Normalizes Page", func(t *testing.T) {
		repo := new(MockOrganizationRepo)
		repo.On("ListActive", ctx, mock.MatchedBy(func(f domain.OrganizationFilter) bool {
			return f.Page.Page == 1 && f.Page.PageSize == domain.DefaultPageSize && f.MemberType == domain.MemberTypeNational
		})).Return([]domain.MemberOrganization{{ID: 1, Name: "Hope"}}, int32(1), nil)

		svc := NewOrganizationService(repo, new(MockFileStore))
		list, total, err := svc.ListMembers(ctx, domain.OrganizationFilter{MemberType: domain.MemberTypeNational})
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, int32(1), total)
		repo.AssertExpectations(t)
	})
}

func TestOrganizationService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	orgID := int32(7)
	caller := domain.Principal{UserID: 3, OrgID: &orgID}

	t.Run("Defaults City", func(t *testing.T) {
		repo := new(MockOrganizationRepo)
		repo.On("UpdateProfile", ctx, orgID, mock.MatchedBy(func(u *domain.OrganizationProfileUpdate) bool {
			return u.City == domain.DefaultCity && u.Name == "Hope Relief"
		})).Return(nil)
		repo.On("GetByID", ctx, orgID).Return(&domain.MemberOrganization{ID: orgID, Name: "Hope Relief", City: domain.DefaultCity}, nil)
		repo.On("ListContacts", ctx, orgID).Return([]domain.OrganizationContact{{Name: "Akol"}}, nil)

		svc := NewOrganizationService(repo, new(MockFileStore))
		org, err := svc.UpdateProfile(ctx, caller, &domain.OrganizationProfileUpdate{
			Name:  "  Hope Relief ",
			Email: "info@hope.org",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCity, org.City)
		assert.Len(t, org.Contacts, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Replaced Logo Is Deleted", func(t *testing.T) {
		repo := new(MockOrganizationRepo)
		files := new(MockFileStore)
		files.On("FileExists", ctx, "logo/org7/new.png").Return(true, int64(900), nil)
		files.On("DeleteFile", ctx, "logo/org7/old.png").Return(nil)
		repo.On("GetByID", ctx, orgID).Return(&domain.MemberOrganization{ID: orgID, LogoKey: "logo/org7/old.png"}, nil)
		repo.On("UpdateProfile", ctx, orgID, mock.AnythingOfType("*domain.OrganizationProfileUpdate")).Return(nil)
		repo.On("ListContacts", ctx, orgID).Return([]domain.OrganizationContact{}, nil)

		svc := NewOrganizationService(repo, files)
		_, err := svc.UpdateProfile(ctx, caller, &domain.OrganizationProfileUpdate{
			Name:    "Hope Relief",
			Email:   "info@hope.org",
			LogoKey: "logo/org7/new.png",
		})
		require.NoError(t, err)
		files.AssertExpectations(t)
	})

	t.Run("Missing Logo Upload", func(t *testing.T) {
		files := new(MockFileStore)
		files.On("FileExists", ctx, "logo/org7/new.png").Return(false, int64(0), nil)

		svc := NewOrganizationService(new(MockOrganizationRepo), files)
		_, err := svc.UpdateProfile(ctx, caller, &domain.OrganizationProfileUpdate{
			Name:    "Hope Relief",
			Email:   "info@hope.org",
			LogoKey: "logo/org7/new.png",
		})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "logo")
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewOrganizationService(new(MockOrganizationRepo), new(MockFileStore))
		_, err := svc.UpdateProfile(ctx, caller, &domain.OrganizationProfileUpdate{Email: "nope"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "email")
	})

	t.Run("No Organization", func(t *testing.T) {
		svc := NewOrganizationService(new(MockOrganizationRepo), new(MockFileStore))
		_, err := svc.UpdateProfile(ctx, domain.Principal{UserID: 3}, &domain.OrganizationProfileUpdate{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestOrganizationService_AddContact(t *testing.T) {
	ctx := context.Background()
	orgID := int32(7)

	repo := new(MockOrganizationRepo)
	repo.On("AddContact", ctx, mock.MatchedBy(func(c *domain.OrganizationContact) bool {
		return c.OrgID == orgID && c.Email == "akol@hope.org"
	})).Return(nil)

	svc := NewOrganizationService(repo, new(MockFileStore))
	err := svc.AddContact(ctx, domain.Principal{UserID: 3, OrgID: &orgID}, &domain.OrganizationContact{
		Name:  "Akol",
		Email: "akol@hope.org",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrganizationService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid", func(t *testing.T) {
		svc := NewOrganizationService(new(MockOrganizationRepo), new(MockFileStore))
		err := svc.SetStatus(ctx, 4, "ARCHIVED")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "status")
	})

	t.Run("Suspend", func(t *testing.T) {
		repo := new(MockOrganizationRepo)
		repo.On("UpdateStatus", ctx, int32(4), domain.OrgStatusSuspended).Return(nil)

		svc := NewOrganizationService(repo, new(MockFileStore))
		require.NoError(t, svc.SetStatus(ctx, 4, domain.OrgStatusSuspended))
		repo.AssertExpectations(t)
	})
}
