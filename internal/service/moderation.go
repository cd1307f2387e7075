package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/telemetry"
)

type moderationService struct {
	repo     repository.ModerationRepository
	orgRepo  repository.OrganizationRepository
	emailSvc EmailService
	now      func() time.Time
}

func NewModerationService(repo repository.ModerationRepository, orgRepo repository.OrganizationRepository, emailSvc EmailService) ModerationService {
	return &moderationService{
		repo:     repo,
		orgRepo:  orgRepo,
		emailSvc: emailSvc,
		now:      time.Now,
	}
}

func (s *moderationService) Submit(ctx context.Context, ref domain.ContentRef, orgID int32, notes string) (*domain.ModerationEntry, error) {
	if !ref.Kind.Valid() {
		return nil, domain.ErrNotFound
	}

	existing, err := s.repo.GetPendingByRef(ctx, ref)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrInvalidState
	}

	entry := domain.NewPendingEntry(ref.Kind, orgID, notes)
	entry.ObjectID = ref.ObjectID
	if err := s.repo.Create(ctx, entry); err != nil {
		// The partial unique index catches a racing submission
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrInvalidState
		}
		return nil, err
	}

	telemetry.ModerationSubmissionsTotal.WithLabelValues(string(ref.Kind)).Inc()
	return entry, nil
}

func (s *moderationService) Approve(ctx context.Context, entryID, reviewerID int32, notes string) (*domain.ModerationEntry, error) {
	return s.decide(ctx, entryID, reviewerID, domain.ModerationStatusApproved, notes)
}

func (s *moderationService) Reject(ctx context.Context, entryID, reviewerID int32, notes string) (*domain.ModerationEntry, error) {
	if strings.TrimSpace(notes) == "" {
		notes = domain.DefaultRejectionNotes
	}
	return s.decide(ctx, entryID, reviewerID, domain.ModerationStatusRejected, notes)
}

func (s *moderationService) decide(ctx context.Context, entryID, reviewerID int32, status domain.ModerationStatus, notes string) (*domain.ModerationEntry, error) {
	entry, err := s.repo.Decide(ctx, entryID, domain.ModerationDecision{
		Status:     status,
		ReviewerID: reviewerID,
		Notes:      notes,
		DecidedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	telemetry.ModerationDecisionsTotal.WithLabelValues(string(entry.Kind), strings.ToLower(string(status))).Inc()
	logger.InfoContext(ctx, "Moderation decision recorded",
		"entry_id", entry.ID, "kind", entry.Kind, "object_id", entry.ObjectID,
		"decision", status, "reviewer_id", reviewerID)

	s.notifySubmitter(ctx, entry)
	return entry, nil
}

// notifySubmitter emails the submitting organization. The decision is
// already committed, so failures are only logged.
func (s *moderationService) notifySubmitter(ctx context.Context, entry *domain.ModerationEntry) {
	org, err := s.orgRepo.GetByID(ctx, entry.SubmittedBy)
	if err != nil {
		logger.WarnContext(ctx, "Could not load submitter for moderation email", "entry_id", entry.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendContentDecision(ctx, org.Email, org.Name, entry.Kind, entry.Status == domain.ModerationStatusApproved, entry.ReviewerNotes); err != nil {
		logger.WarnContext(ctx, "Failed to send moderation email", "entry_id", entry.ID, "error", err)
	}
}

func (s *moderationService) List(ctx context.Context, filter domain.ModerationFilter) ([]domain.ModerationEntry, int32, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		v := domain.NewValidationError()
		v.Add("status", "Invalid moderation status.")
		return nil, 0, v
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		v := domain.NewValidationError()
		v.Add("content_kind", "Invalid content kind.")
		return nil, 0, v
	}
	filter.Page = filter.Page.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *moderationService) Get(ctx context.Context, id int32) (*domain.ModerationEntry, error) {
	return s.repo.GetByID(ctx, id)
}
