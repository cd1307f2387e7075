package service

import (
	"context"
	"testing"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var alertRecipients = []string{"security@ngoforum.org"}

func newSecurityFixture() (*securityService, *MockIncidentRepo, *MockEmailService) {
	repo := new(MockIncidentRepo)
	emailSvc := new(MockEmailService)
	svc := NewSecurityService(repo, emailSvc, alertRecipients).(*securityService)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC) }
	return svc, repo, emailSvc
}

func memberPrincipal(orgID int32) domain.Principal {
	return domain.Principal{UserID: 100 + orgID, OrgID: &orgID}
}

func TestSecurityService_ReportIncident(t *testing.T) {
	ctx := context.Background()
	svc, repo, emailSvc := newSecurityFixture()

	repo.On("CreateIncident", ctx, mock.AnythingOfType("*domain.SecurityIncident")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.SecurityIncident).ID = 7 }).
		Return(nil)
	emailSvc.On("SendSecurityAlert", ctx, alertRecipients, mock.MatchedBy(func(i *domain.SecurityIncident) bool {
		return i.ID == 7
	})).Return(nil)

	incident := &domain.SecurityIncident{
		ReporterName:  "Grace",
		ReporterEmail: "grace@nilerelief.org",
		Who:           "Two staff",
		WhereLocation: "Yei road",
		WhenDate:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		WhatHappened:  "Vehicle stopped",
		IncidentType:  "Checkpoint",
		Status:        domain.IncidentStatusClosed,
	}
	require.NoError(t, svc.ReportIncident(ctx, memberPrincipal(3), incident))

	assert.Equal(t, domain.SeverityMedium, incident.Severity)
	assert.Equal(t, domain.IncidentStatusReported, incident.Status)
	require.NotNil(t, incident.OrgID)
	assert.Equal(t, int32(3), *incident.OrgID)
	emailSvc.AssertExpectations(t)
}

func TestSecurityService_ViewerScope(t *testing.T) {
	ctx := context.Background()
	page := domain.Page{Page: 1, PageSize: domain.DefaultPageSize}

	t.Run("Staff", func(t *testing.T) {
		svc, repo, _ := newSecurityFixture()
		repo.On("ListIncidents", ctx, domain.IncidentFilter{Page: page}, repository.Viewer{IsStaff: true}).
			Return([]domain.SecurityIncident{{ID: 1}, {ID: 2}}, int32(2), nil)

		list, _, err := svc.ListIncidents(ctx, domain.Principal{UserID: 1, IsStaff: true}, domain.IncidentFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Member", func(t *testing.T) {
		svc, repo, _ := newSecurityFixture()
		repo.On("ListIncidents", ctx, domain.IncidentFilter{Page: page}, repository.Viewer{OrgID: 3}).
			Return([]domain.SecurityIncident{{ID: 2}}, int32(1), nil)

		list, _, err := svc.ListIncidents(ctx, memberPrincipal(3), domain.IncidentFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("No Organization", func(t *testing.T) {
		svc, repo, _ := newSecurityFixture()
		_, _, err := svc.ListIncidents(ctx, domain.Principal{UserID: 9}, domain.IncidentFilter{})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		repo.AssertNotCalled(t, "ListIncidents", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSecurityService_UpdateIncidentResolves(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newSecurityFixture()

	repo.On("GetIncident", ctx, int32(7), repository.Viewer{IsStaff: true}).
		Return(&domain.SecurityIncident{ID: 7, Status: domain.IncidentStatusInvestigating}, nil)
	repo.On("UpdateIncident", ctx, mock.AnythingOfType("*domain.SecurityIncident")).Return(nil)

	incident, err := svc.UpdateIncident(ctx, 7, domain.IncidentStatusResolved, "Vehicle released")
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusResolved, incident.Status)
	assert.Equal(t, "Vehicle released", incident.FollowUpNotes)
	require.NotNil(t, incident.ResolvedDate)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *incident.ResolvedDate)
}

func TestSecurityService_UpdateIncidentInvalidStatus(t *testing.T) {
	svc, _, _ := newSecurityFixture()
	_, err := svc.UpdateIncident(context.Background(), 7, "ESCALATED", "")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
