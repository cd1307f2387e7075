package service

import (
	"context"
	"strings"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/storage"
)

type postingService struct {
	jobRepo      repository.JobRepository
	trainingRepo repository.TrainingRepository
	tenderRepo   repository.TenderRepository
	orgRepo      repository.OrganizationRepository
	store        storage.Storage
}

func NewPostingService(
	jobRepo repository.JobRepository,
	trainingRepo repository.TrainingRepository,
	tenderRepo repository.TenderRepository,
	orgRepo repository.OrganizationRepository,
	store storage.Storage,
) PostingService {
	return &postingService{
		jobRepo:      jobRepo,
		trainingRepo: trainingRepo,
		tenderRepo:   tenderRepo,
		orgRepo:      orgRepo,
		store:        store,
	}
}

// Jobs

func (s *postingService) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.JobAdvertisement, int32, error) {
	if filter.JobType != "" && !filter.JobType.Valid() {
		v := domain.NewValidationError()
		v.Add("job_type", "Select a valid job type.")
		return nil, 0, v
	}
	filter.Page = filter.Page.Normalize()
	return s.jobRepo.ListPublished(ctx, filter)
}

func (s *postingService) CreateJob(ctx context.Context, orgID int32, job *domain.JobAdvertisement) error {
	v := domain.NewValidationError()
	v.Require("job_title", job.JobTitle)
	v.Require("location", job.Location)
	v.Require("description", job.Description)
	v.Require("requirements", job.Requirements)
	if !job.JobType.Valid() {
		v.Add("job_type", "Select a valid job type.")
	}
	if job.ApplicationDeadline.IsZero() {
		v.Add("application_deadline", "This field is required.")
	}
	optionalEmail(v, "application_email", job.ApplicationEmail)
	if err := v.Err(); err != nil {
		return err
	}

	job.OrgID = orgID
	job.JobTitle = strings.TrimSpace(job.JobTitle)
	entry, err := gate(ctx, s.orgRepo, orgID, job, "")
	if err != nil {
		return err
	}
	if err := s.jobRepo.Create(ctx, job, entry); err != nil {
		return err
	}
	countSubmission(entry)
	return nil
}

func (s *postingService) ListMyJobs(ctx context.Context, orgID int32) ([]domain.JobAdvertisement, error) {
	return s.jobRepo.ListByOrg(ctx, orgID)
}

// Trainings

func (s *postingService) ListTrainings(ctx context.Context, filter domain.TrainingFilter) ([]domain.Training, int32, error) {
	filter.Page = filter.Page.Normalize()
	return s.trainingRepo.ListPublished(ctx, filter)
}

func (s *postingService) CreateTraining(ctx context.Context, orgID int32, training *domain.Training) error {
	v := domain.NewValidationError()
	v.Require("title", training.TrainingTitle)
	v.Require("provider", training.Provider)
	v.Require("description", training.Description)
	if training.StartDate.IsZero() {
		v.Add("start_date", "This field is required.")
	}
	if training.EndDate != nil && training.EndDate.Before(training.StartDate) {
		v.Add("end_date", "End date cannot be before the start date.")
	}
	if !training.IsOnline && strings.TrimSpace(training.Location) == "" {
		v.Add("location", "Location is required for in-person trainings.")
	}
	if training.CostCents != nil && *training.CostCents < 0 {
		v.Add("cost_cents", "Cost cannot be negative.")
	}
	optionalEmail(v, "contact_email", training.ContactEmail)
	if err := v.Err(); err != nil {
		return err
	}

	if training.Currency == "" {
		training.Currency = domain.DefaultCurrency
	}
	if training.CostCents == nil || *training.CostCents == 0 {
		training.IsFree = true
	}
	training.SubmittedBy = &orgID

	entry, err := gate(ctx, s.orgRepo, orgID, training, "")
	if err != nil {
		return err
	}
	if err := s.trainingRepo.Create(ctx, training, entry); err != nil {
		return err
	}
	countSubmission(entry)
	return nil
}

func (s *postingService) ListMyTrainings(ctx context.Context, orgID int32) ([]domain.Training, error) {
	return s.trainingRepo.ListBySubmitter(ctx, orgID)
}

// Tenders

func (s *postingService) ListTenders(ctx context.Context, filter domain.TenderFilter) ([]domain.TenderAdvertisement, int32, error) {
	filter.Page = filter.Page.Normalize()
	return s.tenderRepo.ListPublished(ctx, filter)
}

func (s *postingService) CreateTender(ctx context.Context, orgID int32, tender *domain.TenderAdvertisement) error {
	v := domain.NewValidationError()
	v.Require("title", tender.TenderTitle)
	v.Require("reference_number", tender.ReferenceNumber)
	v.Require("description", tender.Description)
	v.Require("category", tender.Category)
	v.Require("contact_person", tender.ContactPerson)
	requireEmail(v, "contact_email", tender.ContactEmail)
	if tender.SubmissionDeadline.IsZero() {
		v.Add("submission_deadline", "This field is required.")
	}
	if err := checkStoredFile(ctx, s.store, v, "document", tender.DocumentKey, UploadPurposeTenderDocument); err != nil {
		return err
	}
	if err := v.Err(); err != nil {
		return err
	}

	tender.OrgID = orgID
	tender.ReferenceNumber = strings.TrimSpace(tender.ReferenceNumber)
	entry, err := gate(ctx, s.orgRepo, orgID, tender, "")
	if err != nil {
		return err
	}
	if err := s.tenderRepo.Create(ctx, tender, entry); err != nil {
		if isConflict(err) {
			v.Add("reference_number", "A tender with this reference number already exists.")
			return v
		}
		return err
	}
	countSubmission(entry)
	return nil
}

func (s *postingService) ListMyTenders(ctx context.Context, orgID int32) ([]domain.TenderAdvertisement, error) {
	return s.tenderRepo.ListByOrg(ctx, orgID)
}
