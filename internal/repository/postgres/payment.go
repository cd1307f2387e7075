package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `p.id, p.organization_id, o.name, p.amount_cents, p.payment_date,
	COALESCE(p.transaction_reference, ''), COALESCE(p.payment_method, ''), p.status,
	COALESCE(p.receipt, ''), COALESCE(p.notes, ''), p.created_at, p.updated_at`

const paymentFrom = `membership_payments p JOIN member_organizations o ON o.id = p.organization_id`

func scanPayment(row interface{ Scan(...any) error }) (*domain.MembershipPayment, error) {
	p := &domain.MembershipPayment{}
	err := row.Scan(&p.ID, &p.OrgID, &p.OrganizationName, &p.AmountCents, &p.PaymentDate,
		&p.TransactionReference, &p.PaymentMethod, &p.Status,
		&p.ReceiptKey, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.MembershipPayment) error {
	query := `INSERT INTO membership_payments (organization_id, amount_cents, payment_date, transaction_reference,
	              payment_method, status, receipt, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	return mapError(r.db.QueryRowContext(ctx, query, p.OrgID, p.AmountCents, p.PaymentDate, p.TransactionReference,
		p.PaymentMethod, p.Status, p.ReceiptKey, p.Notes, now).Scan(&p.ID))
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.MembershipPayment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM `+paymentFrom+` WHERE p.id = $1`, id))
	return p, mapError(err)
}

func (r *paymentRepository) List(ctx context.Context, orgID *int32, page domain.Page) ([]domain.MembershipPayment, int32, error) {
	var c conditions
	if orgID != nil {
		c.add("p.organization_id = ?", *orgID)
	}
	total, err := c.count(ctx, r.db, paymentFrom)
	if err != nil {
		return nil, 0, err
	}

	limit, args := c.paged(page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM `+paymentFrom+c.where()+` ORDER BY p.payment_date DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.MembershipPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, *p)
	}
	return payments, total, rows.Err()
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE membership_payments SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now().UTC(), id, from)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrInvalidState)
}

func (r *paymentRepository) Complete(ctx context.Context, id int32, renew repository.MembershipRenewal) (*domain.MemberOrganization, error) {
	logger.EnterMethod("paymentRepository.Complete", "paymentID", id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var orgID int32
	err = tx.QueryRowContext(ctx,
		`UPDATE membership_payments SET status = 'COMPLETED', updated_at = $1
		 WHERE id = $2 AND status = 'PENDING' RETURNING organization_id`, now, id).Scan(&orgID)
	if err == sql.ErrNoRows {
		logger.ExitMethodWithError("paymentRepository.Complete", domain.ErrInvalidState, "paymentID", id)
		return nil, domain.ErrInvalidState
	}
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Complete", err, "paymentID", id)
		return nil, err
	}

	org, err := scanOrg(tx.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM member_organizations WHERE id = $1 FOR UPDATE`, orgID))
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Complete", err, "paymentID", id, "orgID", orgID)
		return nil, mapError(err)
	}

	renew(org)
	org.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`UPDATE member_organizations
		 SET membership_fee_paid = $1, is_verified = $2, auto_approve_content = $3, status = $4,
		     membership_expiry_date = $5, updated_at = $6
		 WHERE id = $7`,
		org.MembershipFeePaid, org.IsVerified, org.AutoApproveContent, org.Status,
		org.MembershipExpiryDate, now, org.ID)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Complete", err, "paymentID", id, "orgID", orgID)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logger.ExitMethod("paymentRepository.Complete", "paymentID", id, "orgID", orgID, "expiry", org.MembershipExpiryDate)
	return org, nil
}
