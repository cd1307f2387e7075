package service

import (
	"context"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
)

type securityService struct {
	repo            repository.IncidentRepository
	emailSvc        EmailService
	alertRecipients []string
	now             func() time.Time
}

func NewSecurityService(repo repository.IncidentRepository, emailSvc EmailService, alertRecipients []string) SecurityService {
	return &securityService{
		repo:            repo,
		emailSvc:        emailSvc,
		alertRecipients: alertRecipients,
		now:             time.Now,
	}
}

// viewer scopes the caller: staff see everything, members their own
// reports plus what others shared, anyone else nothing
func viewer(caller domain.Principal) (repository.Viewer, error) {
	if caller.IsStaff {
		return repository.Viewer{IsStaff: true}, nil
	}
	orgID, err := caller.MemberOrgID()
	if err != nil {
		return repository.Viewer{}, err
	}
	return repository.Viewer{OrgID: orgID}, nil
}

func (s *securityService) ReportIncident(ctx context.Context, caller domain.Principal, incident *domain.SecurityIncident) error {
	if _, err := viewer(caller); err != nil {
		return err
	}

	v := domain.NewValidationError()
	v.Require("reporter_name", incident.ReporterName)
	requireEmail(v, "reporter_email", incident.ReporterEmail)
	v.Require("who", incident.Who)
	v.Require("where_location", incident.WhereLocation)
	v.Require("what_happened", incident.WhatHappened)
	v.Require("incident_type", incident.IncidentType)
	if incident.WhenDate.IsZero() {
		v.Add("when_date", "This field is required.")
	}
	if incident.Severity == "" {
		incident.Severity = domain.SeverityMedium
	} else if !incident.Severity.Valid() {
		v.Add("severity", "Select a valid severity.")
	}
	if err := v.Err(); err != nil {
		return err
	}

	incident.OrgID = caller.OrgID
	incident.Status = domain.IncidentStatusReported
	incident.ResolvedDate = nil
	incident.FollowUpNotes = ""
	if err := s.repo.CreateIncident(ctx, incident); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Security incident reported", "incident_id", incident.ID, "severity", incident.Severity)
	if err := s.emailSvc.SendSecurityAlert(ctx, s.alertRecipients, incident); err != nil {
		logger.WarnContext(ctx, "Failed to send security alert", "incident_id", incident.ID, "error", err)
	}
	return nil
}

func (s *securityService) ListIncidents(ctx context.Context, caller domain.Principal, filter domain.IncidentFilter) ([]domain.SecurityIncident, int32, error) {
	scope, err := viewer(caller)
	if err != nil {
		return nil, 0, err
	}
	filter.Page = filter.Page.Normalize()
	return s.repo.ListIncidents(ctx, filter, scope)
}

func (s *securityService) GetIncident(ctx context.Context, caller domain.Principal, id int32) (*domain.SecurityIncident, error) {
	scope, err := viewer(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.GetIncident(ctx, id, scope)
}

func (s *securityService) UpdateIncident(ctx context.Context, id int32, status domain.IncidentStatus, followUp string) (*domain.SecurityIncident, error) {
	if !status.Valid() {
		v := domain.NewValidationError()
		v.Add("status", "Invalid incident status.")
		return nil, v
	}

	incident, err := s.repo.GetIncident(ctx, id, repository.Viewer{IsStaff: true})
	if err != nil {
		return nil, err
	}

	incident.Status = status
	if followUp != "" {
		incident.FollowUpNotes = followUp
	}
	if (status == domain.IncidentStatusResolved || status == domain.IncidentStatusClosed) && incident.ResolvedDate == nil {
		today := domain.TruncateDay(s.now().UTC())
		incident.ResolvedDate = &today
	}

	if err := s.repo.UpdateIncident(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

func (s *securityService) ReportConstraint(ctx context.Context, caller domain.Principal, constraint *domain.AccessConstraint) error {
	if _, err := viewer(caller); err != nil {
		return err
	}

	v := domain.NewValidationError()
	v.Require("reporter_name", constraint.ReporterName)
	requireEmail(v, "reporter_email", constraint.ReporterEmail)
	v.Require("location", constraint.Location)
	v.Require("description", constraint.Description)
	if !constraint.ConstraintType.Valid() {
		v.Add("constraint_type", "Select a valid constraint type.")
	}
	if err := v.Err(); err != nil {
		return err
	}

	constraint.OrgID = caller.OrgID
	constraint.Status = domain.ConstraintStatusActive
	constraint.ResolvedDate = nil
	if constraint.DateReported.IsZero() {
		constraint.DateReported = domain.TruncateDay(s.now().UTC())
	}
	return s.repo.CreateConstraint(ctx, constraint)
}

func (s *securityService) ListConstraints(ctx context.Context, caller domain.Principal, filter domain.ConstraintFilter) ([]domain.AccessConstraint, int32, error) {
	scope, err := viewer(caller)
	if err != nil {
		return nil, 0, err
	}
	filter.Page = filter.Page.Normalize()
	return s.repo.ListConstraints(ctx, filter, scope)
}

func (s *securityService) GetConstraint(ctx context.Context, caller domain.Principal, id int32) (*domain.AccessConstraint, error) {
	scope, err := viewer(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.GetConstraint(ctx, id, scope)
}

func (s *securityService) UpdateConstraint(ctx context.Context, id int32, status domain.ConstraintStatus, resolution string) (*domain.AccessConstraint, error) {
	if !status.Valid() {
		v := domain.NewValidationError()
		v.Add("status", "Invalid constraint status.")
		return nil, v
	}

	constraint, err := s.repo.GetConstraint(ctx, id, repository.Viewer{IsStaff: true})
	if err != nil {
		return nil, err
	}

	constraint.Status = status
	if resolution != "" {
		constraint.ResolutionNotes = resolution
	}
	if status == domain.ConstraintStatusResolved && constraint.ResolvedDate == nil {
		today := domain.TruncateDay(s.now().UTC())
		constraint.ResolvedDate = &today
	}

	if err := s.repo.UpdateConstraint(ctx, constraint); err != nil {
		return nil, err
	}
	return constraint, nil
}
