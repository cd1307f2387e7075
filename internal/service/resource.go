package service

import (
	"context"
	"strings"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/storage"
)

type resourceService struct {
	repo    repository.ResourceRepository
	faqRepo repository.FAQRepository
	orgRepo repository.OrganizationRepository
	store   storage.Storage
}

func NewResourceService(repo repository.ResourceRepository, faqRepo repository.FAQRepository, orgRepo repository.OrganizationRepository, store storage.Storage) ResourceService {
	return &resourceService{repo: repo, faqRepo: faqRepo, orgRepo: orgRepo, store: store}
}

func (s *resourceService) ListCategories(ctx context.Context) ([]domain.ResourceCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *resourceService) List(ctx context.Context, filter domain.ResourceFilter) ([]domain.Resource, int32, error) {
	if filter.ResourceType != "" && !filter.ResourceType.Valid() {
		v := domain.NewValidationError()
		v.Add("resource_type", "Select a valid resource type.")
		return nil, 0, v
	}
	filter.Page = filter.Page.Normalize()
	return s.repo.ListApproved(ctx, filter)
}

func (s *resourceService) TrackDownload(ctx context.Context, id int32) (*domain.Resource, error) {
	return s.repo.TrackDownload(ctx, id)
}

func (s *resourceService) Create(ctx context.Context, orgID int32, resource *domain.Resource) error {
	v := domain.NewValidationError()
	v.Require("title", resource.ResourceTitle)
	v.Require("description", resource.Description)
	if resource.ResourceType == "" {
		resource.ResourceType = domain.ResourceTypeDocument
	} else if !resource.ResourceType.Valid() {
		v.Add("resource_type", "Select a valid resource type.")
	}
	if strings.TrimSpace(resource.FileKey) == "" && strings.TrimSpace(resource.ExternalURL) == "" {
		v.Add("file", "Provide a file or an external URL.")
	}
	if err := checkStoredFile(ctx, s.store, v, "file", resource.FileKey, UploadPurposeResource); err != nil {
		return err
	}
	if err := v.Err(); err != nil {
		return err
	}

	resource.UploadedBy = &orgID
	resource.IsFeatured = false
	resource.DownloadCount = 0

	entry, err := gate(ctx, s.orgRepo, orgID, resource, "")
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, resource, entry); err != nil {
		return err
	}
	countSubmission(entry)
	return nil
}

func (s *resourceService) ListMine(ctx context.Context, orgID int32) ([]domain.Resource, error) {
	return s.repo.ListByUploader(ctx, orgID)
}

func (s *resourceService) ListFAQCategories(ctx context.Context) ([]domain.FAQCategory, error) {
	return s.faqRepo.ListCategories(ctx)
}

func (s *resourceService) ListFAQs(ctx context.Context, filter domain.FAQFilter) ([]domain.FAQ, int32, error) {
	filter.Page = filter.Page.Normalize()
	return s.faqRepo.ListPublished(ctx, filter)
}
