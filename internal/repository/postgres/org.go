package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/utils"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

const orgColumns = `id, name, slug, member_type, COALESCE(rrc_number, ''), registration_date,
	email, COALESCE(phone, ''), COALESCE(website, ''), COALESCE(address, ''), city, COALESCE(state, ''),
	COALESCE(description, ''), COALESCE(logo, ''), status, date_joined, is_verified, auto_approve_content,
	membership_fee_paid, membership_expiry_date, created_at, updated_at`

func scanOrg(row interface{ Scan(...any) error }) (*domain.MemberOrganization, error) {
	o := &domain.MemberOrganization{}
	err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.MemberType, &o.RRCNumber, &o.RegistrationDate,
		&o.Email, &o.Phone, &o.Website, &o.Address, &o.City, &o.State,
		&o.Description, &o.LogoKey, &o.Status, &o.DateJoined, &o.IsVerified, &o.AutoApproveContent,
		&o.MembershipFeePaid, &o.MembershipExpiryDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func scanOrgs(rows *sql.Rows) ([]domain.MemberOrganization, error) {
	defer rows.Close()
	var orgs []domain.MemberOrganization
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}

// insertOrganization derives a free slug and inserts o. Used by application approval.
func insertOrganization(ctx context.Context, q queryer, o *domain.MemberOrganization) error {
	base := o.Slug
	if base == "" {
		base = utils.Slugify(o.Name)
	}
	slug, err := uniqueSlug(ctx, q, "member_organizations", base)
	if err != nil {
		return err
	}
	o.Slug = slug
	if o.City == "" {
		o.City = domain.DefaultCity
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	o.DateJoined = now

	query := `INSERT INTO member_organizations (name, slug, member_type, rrc_number, email, phone, website,
	              address, city, state, description, status, date_joined, is_verified, auto_approve_content,
	              membership_fee_paid, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $13, $13) RETURNING id`
	return q.QueryRowContext(ctx, query, o.Name, o.Slug, o.MemberType, o.RRCNumber, o.Email, o.Phone, o.Website,
		o.Address, o.City, o.State, o.Description, o.Status, now, o.IsVerified, o.AutoApproveContent,
		o.MembershipFeePaid).Scan(&o.ID)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.MemberOrganization, error) {
	o, err := scanOrg(r.db.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM member_organizations WHERE id = $1`, id))
	return o, mapError(err)
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.MemberOrganization, error) {
	o, err := scanOrg(r.db.QueryRowContext(ctx,
		`SELECT `+orgColumns+` FROM member_organizations WHERE slug = $1 AND status = 'ACTIVE'`, slug))
	if err != nil {
		return nil, mapError(err)
	}
	o.Contacts, err = r.ListContacts(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) ListActive(ctx context.Context, f domain.OrganizationFilter) ([]domain.MemberOrganization, int32, error) {
	logger.EnterMethod("organizationRepository.ListActive", "memberType", f.MemberType, "search", f.Search)

	var c conditions
	c.add("status = 'ACTIVE'")
	if f.MemberType != "" {
		c.add("member_type = ?", f.MemberType)
	}
	if f.State != "" {
		c.add("state = ?", f.State)
	}
	if f.City != "" {
		c.add("city = ?", f.City)
	}
	if f.IsVerified != nil {
		c.add("is_verified = ?", *f.IsVerified)
	}
	c.search(f.Search, "name", "description", "state", "city")

	total, err := c.count(ctx, r.db, "member_organizations")
	if err != nil {
		logger.ExitMethodWithError("organizationRepository.ListActive", err)
		return nil, 0, err
	}

	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+orgColumns+` FROM member_organizations`+c.where()+` ORDER BY name`+limit, args...)
	if err != nil {
		logger.ExitMethodWithError("organizationRepository.ListActive", err)
		return nil, 0, err
	}
	orgs, err := scanOrgs(rows)
	if err != nil {
		return nil, 0, err
	}

	logger.ExitMethod("organizationRepository.ListActive", "count", len(orgs), "total", total)
	return orgs, total, nil
}

func (r *organizationRepository) UpdateProfile(ctx context.Context, id int32, u *domain.OrganizationProfileUpdate) error {
	query := `UPDATE member_organizations SET name=$1, rrc_number=$2, email=$3, phone=$4, website=$5, address=$6,
	              city=$7, state=$8, description=$9, logo=$10, updated_at=$11
	          WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.RRCNumber, u.Email, u.Phone, u.Website, u.Address,
		u.City, u.State, u.Description, u.LogoKey, time.Now().UTC(), id)
	if err != nil {
		return mapError(err)
	}
	return expectOneRow(res, domain.ErrNotFound)
}

func (r *organizationRepository) UpdateStatus(ctx context.Context, id int32, status domain.OrgStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE member_organizations SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrNotFound)
}

func (r *organizationRepository) AddContact(ctx context.Context, c *domain.OrganizationContact) error {
	query := `INSERT INTO organization_contacts (organization_id, name, title, email, phone, is_primary, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	c.CreatedAt = time.Now().UTC()
	return mapError(r.db.QueryRowContext(ctx, query, c.OrgID, c.Name, c.Title, c.Email, c.Phone, c.IsPrimary, c.CreatedAt).Scan(&c.ID))
}

func (r *organizationRepository) ListContacts(ctx context.Context, orgID int32) ([]domain.OrganizationContact, error) {
	query := `SELECT id, organization_id, name, COALESCE(title, ''), email, COALESCE(phone, ''), is_primary, created_at
	          FROM organization_contacts WHERE organization_id = $1 ORDER BY is_primary DESC, name`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.OrganizationContact
	for rows.Next() {
		var c domain.OrganizationContact
		if err := rows.Scan(&c.ID, &c.OrgID, &c.Name, &c.Title, &c.Email, &c.Phone, &c.IsPrimary, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *organizationRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.MemberOrganization, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orgColumns+` FROM member_organizations
		 WHERE status = 'ACTIVE' AND membership_expiry_date >= $1 AND membership_expiry_date <= $2
		 ORDER BY membership_expiry_date`, from, to)
	if err != nil {
		return nil, err
	}
	return scanOrgs(rows)
}

func (r *organizationRepository) ListExpiredBefore(ctx context.Context, day time.Time) ([]domain.MemberOrganization, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orgColumns+` FROM member_organizations
		 WHERE status = 'ACTIVE' AND membership_expiry_date < $1
		 ORDER BY membership_expiry_date`, day)
	if err != nil {
		return nil, err
	}
	return scanOrgs(rows)
}

// Deactivate only touches organizations that are still active
func (r *organizationRepository) Deactivate(ctx context.Context, id int32) error {
	logger.EnterMethod("organizationRepository.Deactivate", "orgID", id)
	lapsed := &domain.MemberOrganization{ID: id}
	utils.DeactivateMembership(lapsed)
	res, err := r.db.ExecContext(ctx,
		`UPDATE member_organizations SET status = $1, is_verified = $2, auto_approve_content = $3, updated_at = $4
		 WHERE id = $5 AND status = 'ACTIVE'`,
		lapsed.Status, lapsed.IsVerified, lapsed.AutoApproveContent, time.Now().UTC(), id)
	if err != nil {
		logger.ExitMethodWithError("organizationRepository.Deactivate", err, "orgID", id)
		return err
	}
	if err := expectOneRow(res, domain.ErrInvalidState); err != nil {
		logger.ExitMethodWithError("organizationRepository.Deactivate", err, "orgID", id)
		return err
	}
	logger.ExitMethod("organizationRepository.Deactivate", "orgID", id)
	return nil
}
