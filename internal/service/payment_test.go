package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ngoforum-backend/internal/config"
	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture(today time.Time) (*paymentService, *MockPaymentRepo, *MockEmailService) {
	repo := new(MockPaymentRepo)
	emailSvc := new(MockEmailService)
	svc := NewPaymentService(repo, emailSvc, new(MockFileStore), config.MembershipConfig{TermDays: 365, DefaultFeeCents: 20000}).(*paymentService)
	svc.now = func() time.Time { return today }
	return svc, repo, emailSvc
}

// completeWith makes the mocked Complete apply the renewal to org like the
// real repository does inside its transaction
func completeWith(ctx context.Context, repo *MockPaymentRepo, id int32, org *domain.MemberOrganization) {
	repo.On("Complete", ctx, id, mock.Anything).
		Run(func(args mock.Arguments) {
			renew := args.Get(2).(repository.MembershipRenewal)
			renew(org)
		}).
		Return(org, nil)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPaymentService_CompleteFirstPayment(t *testing.T) {
	ctx := context.Background()
	svc, repo, emailSvc := newPaymentFixture(date(2022, time.June, 15))

	org := &domain.MemberOrganization{ID: 3, Name: "Hope NGO", Email: "info@hope.org", Status: domain.OrgStatusPending}
	repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, OrgID: 3, Status: domain.PaymentStatusPending}, nil)
	completeWith(ctx, repo, 8, org)
	emailSvc.On("SendPaymentCompleted", ctx, "info@hope.org", "Hope NGO", date(2023, time.June, 15)).Return(nil)

	payment, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)

	require.NotNil(t, org.MembershipExpiryDate)
	assert.Equal(t, date(2023, time.June, 15), *org.MembershipExpiryDate)
	assert.True(t, org.MembershipFeePaid)
	assert.True(t, org.IsVerified)
	assert.True(t, org.AutoApproveContent)
	assert.Equal(t, domain.OrgStatusActive, org.Status)
	emailSvc.AssertExpectations(t)
}

func TestPaymentService_CompleteLeapYear(t *testing.T) {
	ctx := context.Background()
	svc, repo, emailSvc := newPaymentFixture(date(2024, time.January, 1))

	org := &domain.MemberOrganization{ID: 3, Status: domain.OrgStatusPending}
	repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusPending}, nil)
	completeWith(ctx, repo, 8, org)
	emailSvc.On("SendPaymentCompleted", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusCompleted)
	require.NoError(t, err)

	// The term is 365 days, so a leap year ends one calendar day early
	assert.Equal(t, date(2024, time.December, 31), *org.MembershipExpiryDate)
	assert.True(t, org.IsVerified)
	assert.True(t, org.AutoApproveContent)
}

func TestPaymentService_CompleteExtendsUnexpiredMembership(t *testing.T) {
	ctx := context.Background()
	svc, repo, emailSvc := newPaymentFixture(date(2022, time.June, 15))

	expiry := date(2022, time.September, 1)
	org := &domain.MemberOrganization{ID: 3, Status: domain.OrgStatusActive, MembershipExpiryDate: &expiry}
	repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusPending}, nil)
	completeWith(ctx, repo, 8, org)
	emailSvc.On("SendPaymentCompleted", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.September, 1), *org.MembershipExpiryDate)
	assert.Equal(t, domain.OrgStatusActive, org.Status)
}

func TestPaymentService_CompleteRestartsLapsedMembership(t *testing.T) {
	ctx := context.Background()
	svc, repo, emailSvc := newPaymentFixture(date(2022, time.June, 15))

	expiry := date(2022, time.January, 10)
	org := &domain.MemberOrganization{ID: 3, Status: domain.OrgStatusInactive, MembershipExpiryDate: &expiry}
	repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusPending}, nil)
	completeWith(ctx, repo, 8, org)
	emailSvc.On("SendPaymentCompleted", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.June, 15), *org.MembershipExpiryDate)
	// Only PENDING organizations are activated by a payment
	assert.Equal(t, domain.OrgStatusInactive, org.Status)
}

func TestPaymentService_CompleteTwice(t *testing.T) {
	ctx := context.Background()

	t.Run("Already Completed", func(t *testing.T) {
		svc, repo, _ := newPaymentFixture(date(2022, time.June, 15))
		repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusCompleted}, nil)

		_, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost Race", func(t *testing.T) {
		svc, repo, emailSvc := newPaymentFixture(date(2022, time.June, 15))
		repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusPending}, nil)
		repo.On("Complete", ctx, int32(8), mock.Anything).Return(nil, domain.ErrInvalidState)

		_, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		emailSvc.AssertNotCalled(t, "SendPaymentCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_OtherTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending To Failed", func(t *testing.T) {
		svc, repo, _ := newPaymentFixture(date(2022, time.June, 15))
		repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusPending}, nil)
		repo.On("UpdateStatus", ctx, int32(8), domain.PaymentStatusPending, domain.PaymentStatusFailed).Return(nil)

		payment, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusFailed)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
		repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Completed To Refunded", func(t *testing.T) {
		svc, repo, _ := newPaymentFixture(date(2022, time.June, 15))
		repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusCompleted}, nil)
		repo.On("UpdateStatus", ctx, int32(8), domain.PaymentStatusCompleted, domain.PaymentStatusRefunded).Return(nil)

		payment, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusRefunded)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusRefunded, payment.Status)
	})

	t.Run("Failed Is Terminal", func(t *testing.T) {
		svc, repo, _ := newPaymentFixture(date(2022, time.June, 15))
		repo.On("GetByID", ctx, int32(8)).Return(&domain.MembershipPayment{ID: 8, Status: domain.PaymentStatusFailed}, nil)

		_, err := svc.UpdateStatus(ctx, 8, domain.PaymentStatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Unknown Status", func(t *testing.T) {
		svc, _, _ := newPaymentFixture(date(2022, time.June, 15))
		_, err := svc.UpdateStatus(ctx, 8, "PAID")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := int32(3)
	member := domain.Principal{UserID: 1, OrgID: &orgID}

	t.Run("Defaults", func(t *testing.T) {
		svc, repo, _ := newPaymentFixture(time.Date(2022, time.June, 15, 13, 30, 0, 0, time.UTC))
		repo.On("Create", ctx, mock.AnythingOfType("*domain.MembershipPayment")).Return(nil)

		payment := &domain.MembershipPayment{OrgID: 99, PaymentMethod: "Bank transfer", Status: domain.PaymentStatusCompleted}
		require.NoError(t, svc.Create(ctx, member, payment))
		assert.Equal(t, int32(3), payment.OrgID)
		assert.Equal(t, domain.PaymentStatusPending, payment.Status)
		assert.Equal(t, int64(20000), payment.AmountCents)
		assert.Equal(t, date(2022, time.June, 15), payment.PaymentDate)
	})

	t.Run("No Organization", func(t *testing.T) {
		svc, _, _ := newPaymentFixture(date(2022, time.June, 15))
		err := svc.Create(ctx, domain.Principal{UserID: 1}, &domain.MembershipPayment{PaymentMethod: "Cash"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Validation", func(t *testing.T) {
		svc, _, _ := newPaymentFixture(date(2022, time.June, 15))
		err := svc.Create(ctx, member, &domain.MembershipPayment{AmountCents: -5})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "payment_method")
		assert.Contains(t, verr.Fields, "amount_cents")
	})
}

func TestPaymentService_CreateChecksReceipt(t *testing.T) {
	ctx := context.Background()
	orgID := int32(3)
	member := domain.Principal{UserID: 1, OrgID: &orgID}

	t.Run("Stored Receipt", func(t *testing.T) {
		svc, repo, _ := newPaymentFixture(date(2022, time.June, 15))
		files := new(MockFileStore)
		files.On("FileExists", ctx, "receipt/org3/slip.pdf").Return(true, int64(512), nil)
		svc.store = files
		repo.On("Create", ctx, mock.AnythingOfType("*domain.MembershipPayment")).Return(nil)

		require.NoError(t, svc.Create(ctx, member, &domain.MembershipPayment{PaymentMethod: "Bank transfer", ReceiptKey: "receipt/org3/slip.pdf"}))
		files.AssertExpectations(t)
	})

	t.Run("Missing Receipt", func(t *testing.T) {
		svc, repo, _ := newPaymentFixture(date(2022, time.June, 15))
		files := new(MockFileStore)
		files.On("FileExists", ctx, "receipt/org3/never-uploaded.pdf").Return(false, int64(0), nil)
		svc.store = files

		err := svc.Create(ctx, member, &domain.MembershipPayment{PaymentMethod: "Bank transfer", ReceiptKey: "receipt/org3/never-uploaded.pdf"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "receipt")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Key Of Another Purpose", func(t *testing.T) {
		svc, _, _ := newPaymentFixture(date(2022, time.June, 15))
		err := svc.Create(ctx, member, &domain.MembershipPayment{PaymentMethod: "Cash", ReceiptKey: "logo/org3/a.png"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Invalid file reference.", verr.Fields["receipt"])
	})

	t.Run("Storage Failure", func(t *testing.T) {
		svc, _, _ := newPaymentFixture(date(2022, time.June, 15))
		files := new(MockFileStore)
		files.On("FileExists", ctx, "receipt/org3/slip.pdf").Return(false, int64(0), errors.New("permission denied"))
		svc.store = files

		err := svc.Create(ctx, member, &domain.MembershipPayment{PaymentMethod: "Cash", ReceiptKey: "receipt/org3/slip.pdf"})
		require.Error(t, err)
		var verr *domain.ValidationError
		assert.False(t, errors.As(err, &verr))
	})
}

func TestPaymentService_ListScopes(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newPaymentFixture(date(2022, time.June, 15))
	page := domain.Page{Page: 1, PageSize: domain.DefaultPageSize}

	repo.On("List", ctx, (*int32)(nil), page).Return([]domain.MembershipPayment{{ID: 1}, {ID: 2}}, int32(2), nil)
	all, total, err := svc.List(ctx, domain.Principal{UserID: 1, IsStaff: true}, domain.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int32(2), total)

	orgID := int32(3)
	repo.On("List", ctx, mock.MatchedBy(func(id *int32) bool { return id != nil && *id == 3 }), page).
		Return([]domain.MembershipPayment{{ID: 2}}, int32(1), nil)
	own, _, err := svc.List(ctx, domain.Principal{UserID: 2, OrgID: &orgID}, domain.Page{})
	require.NoError(t, err)
	assert.Len(t, own, 1)
}
