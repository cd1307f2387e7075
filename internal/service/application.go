package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type applicationService struct {
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
	store    storage.Storage
	now      func() time.Time
}

func NewApplicationService(appRepo repository.ApplicationRepository, userRepo repository.UserRepository, emailSvc EmailService, store storage.Storage) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
		store:    store,
		now:      time.Now,
	}
}

func (s *applicationService) Submit(ctx context.Context, app *domain.MembershipApplication) error {
	v := domain.NewValidationError()
	v.Require("organization_name", app.OrganizationName)
	if !app.OrganizationType.Valid() {
		v.Add("organization_type", "Select a valid organization type.")
	}
	v.Require("address", app.Address)
	requireEmail(v, "email", app.Email)
	v.Require("phone", app.Phone)
	v.Require("focal_person_name", app.FocalPersonName)
	requireEmail(v, "focal_person_email", app.FocalPersonEmail)
	v.Require("areas_of_work", app.AreasOfWork)
	if err := checkStoredFile(ctx, s.store, v, "rrc_certificate", app.RRCCertificateKey, UploadPurposeCertificate); err != nil {
		return err
	}
	if err := checkStoredFile(ctx, s.store, v, "supporting_documents", app.SupportingDocumentsKey, UploadPurposeSupportingDocuments); err != nil {
		return err
	}
	if err := v.Err(); err != nil {
		return err
	}

	app.Email = strings.ToLower(strings.TrimSpace(app.Email))
	app.Status = domain.ApplicationStatusPending
	app.SubmittedDate = s.now().UTC()
	app.ReviewedDate = nil
	app.ReviewerNotes = ""
	app.ApprovedOrgID = nil
	return s.appRepo.Create(ctx, app)
}

func (s *applicationService) List(ctx context.Context, status domain.ApplicationStatus, page domain.Page) ([]domain.MembershipApplication, int32, error) {
	return s.appRepo.List(ctx, status, page.Normalize())
}

func (s *applicationService) ListByEmail(ctx context.Context, email string) ([]domain.MembershipApplication, error) {
	return s.appRepo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Review approves or rejects an undecided application. Approval creates the
// organization in PENDING status plus an owner account with a temporary
// password; the organization becomes ACTIVE once its first payment completes.
func (s *applicationService) Review(ctx context.Context, appID int32, approve bool, notes string) (*domain.MembershipApplication, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.Status.Decided() {
		return nil, domain.ErrInvalidState
	}

	at := s.now().UTC()
	if !approve {
		if err := s.appRepo.Reject(ctx, appID, notes, at); err != nil {
			return nil, err
		}
		app.Status = domain.ApplicationStatusRejected
		app.ReviewedDate = &at
		app.ReviewerNotes = notes
		if err := s.emailSvc.SendApplicationRejected(ctx, app.Email, app.OrganizationName, notes); err != nil {
			logger.WarnContext(ctx, "Failed to send rejection email", "application_id", appID, "error", err)
		}
		return app, nil
	}

	if _, err := s.userRepo.GetByEmail(ctx, app.Email); err == nil {
		v := domain.NewValidationError()
		v.Add("email", "An account with this email already exists.")
		return nil, v
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	tempPassword := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	org := &domain.MemberOrganization{
		Name:       app.OrganizationName,
		MemberType: app.OrganizationType,
		RRCNumber:  app.RRCRegistration,
		Email:      app.Email,
		Phone:      app.Phone,
		Website:    app.Website,
		Address:    app.Address,
		City:       domain.DefaultCity,
		Status:     domain.OrgStatusPending,
	}
	owner := &domain.User{
		Email:        app.Email,
		PasswordHash: string(hash),
		Name:         app.FocalPersonName,
	}

	if err := s.appRepo.Approve(ctx, appID, org, owner, notes, at); err != nil {
		return nil, err
	}

	app.Status = domain.ApplicationStatusApproved
	app.ReviewedDate = &at
	app.ReviewerNotes = notes
	app.ApprovedOrgID = &org.ID

	logger.InfoContext(ctx, "Membership application approved", "application_id", appID, "org_id", org.ID, "user_id", owner.ID)
	if err := s.emailSvc.SendWelcome(ctx, app.Email, app.OrganizationName, tempPassword); err != nil {
		logger.WarnContext(ctx, "Failed to send welcome email", "application_id", appID, "error", err)
	}
	return app, nil
}
