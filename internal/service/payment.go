package service

import (
	"context"
	"strings"
	"time"

	"ngoforum-backend/internal/config"
	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/storage"
	"ngoforum-backend/internal/telemetry"
	"ngoforum-backend/internal/utils"
)

type paymentService struct {
	repo       repository.PaymentRepository
	emailSvc   EmailService
	store      storage.Storage
	termDays   int
	defaultFee int64
	now        func() time.Time
}

func NewPaymentService(repo repository.PaymentRepository, emailSvc EmailService, store storage.Storage, cfg config.MembershipConfig) PaymentService {
	termDays := cfg.TermDays
	if termDays <= 0 {
		termDays = utils.DefaultMembershipTermDays
	}
	return &paymentService{
		repo:       repo,
		emailSvc:   emailSvc,
		store:      store,
		termDays:   termDays,
		defaultFee: cfg.DefaultFeeCents,
		now:        time.Now,
	}
}

func (s *paymentService) Create(ctx context.Context, caller domain.Principal, payment *domain.MembershipPayment) error {
	orgID, err := caller.MemberOrgID()
	if err != nil {
		return err
	}

	v := domain.NewValidationError()
	v.Require("payment_method", payment.PaymentMethod)
	if payment.AmountCents < 0 {
		v.Add("amount_cents", "Amount cannot be negative.")
	}
	if err := checkStoredFile(ctx, s.store, v, "receipt", payment.ReceiptKey, UploadPurposeReceipt); err != nil {
		return err
	}
	if err := v.Err(); err != nil {
		return err
	}

	payment.OrgID = orgID
	payment.Status = domain.PaymentStatusPending
	payment.PaymentMethod = strings.TrimSpace(payment.PaymentMethod)
	if payment.AmountCents == 0 {
		payment.AmountCents = s.defaultFee
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = domain.TruncateDay(s.now().UTC())
	}

	return s.repo.Create(ctx, payment)
}

func (s *paymentService) List(ctx context.Context, caller domain.Principal, page domain.Page) ([]domain.MembershipPayment, int32, error) {
	if caller.IsStaff {
		return s.repo.List(ctx, nil, page.Normalize())
	}
	orgID, err := caller.MemberOrgID()
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, &orgID, page.Normalize())
}

func (s *paymentService) UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus) (*domain.MembershipPayment, error) {
	if !status.Valid() {
		v := domain.NewValidationError()
		v.Add("status", "Invalid payment status.")
		return nil, v
	}

	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidState
	}

	if status != domain.PaymentStatusCompleted {
		if err := s.repo.UpdateStatus(ctx, id, payment.Status, status); err != nil {
			return nil, err
		}
		payment.Status = status
		return payment, nil
	}

	today := s.now().UTC()
	org, err := s.repo.Complete(ctx, id, func(org *domain.MemberOrganization) {
		utils.ApplyMembershipPayment(org, today, s.termDays)
	})
	if err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatusCompleted

	telemetry.MembershipPaymentsCompletedTotal.Inc()
	logger.InfoContext(ctx, "Membership payment completed",
		"payment_id", id, "org_id", org.ID, "expiry", org.MembershipExpiryDate)

	if org.MembershipExpiryDate != nil {
		if err := s.emailSvc.SendPaymentCompleted(ctx, org.Email, org.Name, *org.MembershipExpiryDate); err != nil {
			logger.WarnContext(ctx, "Failed to send payment confirmation", "payment_id", id, "error", err)
		}
	}
	return payment, nil
}
