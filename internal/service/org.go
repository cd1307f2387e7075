package service

import (
	"context"
	"strings"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/storage"
)

type organizationService struct {
	orgRepo repository.OrganizationRepository
	store   storage.Storage
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, store storage.Storage) OrganizationService {
	return &organizationService{orgRepo: orgRepo, store: store}
}

func (s *organizationService) ListMembers(ctx context.Context, filter domain.OrganizationFilter) ([]domain.MemberOrganization, int32, error) {
	if filter.MemberType != "" && !filter.MemberType.Valid() {
		v := domain.NewValidationError()
		v.Add("member_type", "Invalid member type.")
		return nil, 0, v
	}
	filter.Page = filter.Page.Normalize()
	return s.orgRepo.ListActive(ctx, filter)
}

func (s *organizationService) GetMember(ctx context.Context, slug string) (*domain.MemberOrganization, error) {
	return s.orgRepo.GetBySlug(ctx, slug)
}

func (s *organizationService) GetProfile(ctx context.Context, caller domain.Principal) (*domain.MemberOrganization, error) {
	orgID, err := caller.MemberOrgID()
	if err != nil {
		return nil, err
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	contacts, err := s.orgRepo.ListContacts(ctx, orgID)
	if err != nil {
		return nil, err
	}
	org.Contacts = contacts
	return org, nil
}

// UpdateProfile only touches member-writable fields. Verification, payment
// and status fields are managed by staff and the membership rule.
func (s *organizationService) UpdateProfile(ctx context.Context, caller domain.Principal, update *domain.OrganizationProfileUpdate) (*domain.MemberOrganization, error) {
	orgID, err := caller.MemberOrgID()
	if err != nil {
		return nil, err
	}

	v := domain.NewValidationError()
	v.Require("name", update.Name)
	requireEmail(v, "email", update.Email)
	if err := checkStoredFile(ctx, s.store, v, "logo", update.LogoKey, UploadPurposeLogo); err != nil {
		return nil, err
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	current, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	update.Name = strings.TrimSpace(update.Name)
	if strings.TrimSpace(update.City) == "" {
		update.City = domain.DefaultCity
	}

	if err := s.orgRepo.UpdateProfile(ctx, orgID, update); err != nil {
		return nil, err
	}
	if current.LogoKey != "" && current.LogoKey != strings.TrimSpace(update.LogoKey) {
		if err := s.store.DeleteFile(ctx, current.LogoKey); err != nil {
			logger.WarnContext(ctx, "Failed to delete replaced logo", "org_id", orgID, "key", current.LogoKey, "error", err)
		}
	}
	return s.GetProfile(ctx, caller)
}

func (s *organizationService) AddContact(ctx context.Context, caller domain.Principal, contact *domain.OrganizationContact) error {
	orgID, err := caller.MemberOrgID()
	if err != nil {
		return err
	}

	v := domain.NewValidationError()
	v.Require("name", contact.Name)
	requireEmail(v, "email", contact.Email)
	if err := v.Err(); err != nil {
		return err
	}

	contact.OrgID = orgID
	return s.orgRepo.AddContact(ctx, contact)
}

func (s *organizationService) SetStatus(ctx context.Context, orgID int32, status domain.OrgStatus) error {
	if !status.Valid() {
		v := domain.NewValidationError()
		v.Add("status", "Invalid organization status.")
		return v
	}
	return s.orgRepo.UpdateStatus(ctx, orgID, status)
}
