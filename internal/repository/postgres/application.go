package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, organization_name, organization_type, COALESCE(rrc_registration, ''),
	COALESCE(rrc_certificate, ''), address, email, phone, COALESCE(website, ''), focal_person_name,
	COALESCE(focal_person_title, ''), focal_person_email, focal_person_phone, areas_of_work,
	COALESCE(operational_counties, ''), COALESCE(supporting_documents, ''), application_status,
	submitted_date, reviewed_date, COALESCE(reviewer_notes, ''), approved_organization_id`

func scanApplication(row interface{ Scan(...any) error }) (*domain.MembershipApplication, error) {
	a := &domain.MembershipApplication{}
	err := row.Scan(&a.ID, &a.OrganizationName, &a.OrganizationType, &a.RRCRegistration,
		&a.RRCCertificateKey, &a.Address, &a.Email, &a.Phone, &a.Website, &a.FocalPersonName,
		&a.FocalPersonTitle, &a.FocalPersonEmail, &a.FocalPersonPhone, &a.AreasOfWork,
		&a.OperationalCounties, &a.SupportingDocumentsKey, &a.Status,
		&a.SubmittedDate, &a.ReviewedDate, &a.ReviewerNotes, &a.ApprovedOrgID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func scanApplications(rows *sql.Rows) ([]domain.MembershipApplication, error) {
	defer rows.Close()
	var apps []domain.MembershipApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) Create(ctx context.Context, a *domain.MembershipApplication) error {
	query := `INSERT INTO membership_applications (organization_name, organization_type, rrc_registration,
	              rrc_certificate, address, email, phone, website, focal_person_name, focal_person_title,
	              focal_person_email, focal_person_phone, areas_of_work, operational_counties,
	              supporting_documents, application_status, submitted_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	a.SubmittedDate = time.Now().UTC()
	return mapError(r.db.QueryRowContext(ctx, query, a.OrganizationName, a.OrganizationType, a.RRCRegistration,
		a.RRCCertificateKey, a.Address, a.Email, a.Phone, a.Website, a.FocalPersonName, a.FocalPersonTitle,
		a.FocalPersonEmail, a.FocalPersonPhone, a.AreasOfWork, a.OperationalCounties,
		a.SupportingDocumentsKey, a.Status, a.SubmittedDate).Scan(&a.ID))
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.MembershipApplication, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM membership_applications WHERE id = $1`, id))
	return a, mapError(err)
}

func (r *applicationRepository) List(ctx context.Context, status domain.ApplicationStatus, page domain.Page) ([]domain.MembershipApplication, int32, error) {
	var c conditions
	if status != "" {
		c.add("application_status = ?", status)
	}
	total, err := c.count(ctx, r.db, "membership_applications")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(page)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications`+c.where()+` ORDER BY submitted_date DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	apps, err := scanApplications(rows)
	return apps, total, err
}

func (r *applicationRepository) ListByEmail(ctx context.Context, email string) ([]domain.MembershipApplication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE LOWER(email) = LOWER($1) ORDER BY submitted_date DESC`, email)
	if err != nil {
		return nil, err
	}
	return scanApplications(rows)
}

func (r *applicationRepository) Approve(ctx context.Context, appID int32, org *domain.MemberOrganization, owner *domain.User, notes string, at time.Time) error {
	logger.EnterMethod("applicationRepository.Approve", "applicationID", appID, "orgName", org.Name)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertOrganization(ctx, tx, org); err != nil {
		logger.ExitMethodWithError("applicationRepository.Approve", err, "applicationID", appID)
		return mapError(err)
	}

	owner.OrgID = &org.ID
	if err := insertUser(ctx, tx, owner); err != nil {
		logger.ExitMethodWithError("applicationRepository.Approve", err, "applicationID", appID)
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE membership_applications
		 SET application_status = 'APPROVED', reviewed_date = $1, reviewer_notes = $2, approved_organization_id = $3
		 WHERE id = $4 AND application_status IN ('PENDING', 'UNDER_REVIEW')`,
		at, notes, org.ID, appID)
	if err != nil {
		return err
	}
	if err := expectOneRow(res, domain.ErrInvalidState); err != nil {
		logger.ExitMethodWithError("applicationRepository.Approve", err, "applicationID", appID)
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.ExitMethod("applicationRepository.Approve", "applicationID", appID, "orgID", org.ID, "userID", owner.ID)
	return nil
}

func (r *applicationRepository) Reject(ctx context.Context, appID int32, notes string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE membership_applications
		 SET application_status = 'REJECTED', reviewed_date = $1, reviewer_notes = $2
		 WHERE id = $3 AND application_status IN ('PENDING', 'UNDER_REVIEW')`,
		at, notes, appID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrInvalidState)
}
