package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
)

// Job, training and tender boards share one file; they differ only in columns.

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `j.id, j.organization_id, o.name, j.job_title, j.location, j.job_type, j.description,
	j.requirements, COALESCE(j.responsibilities, ''), COALESCE(j.qualifications, ''), j.application_deadline,
	COALESCE(j.application_email, ''), COALESCE(j.application_url, ''), COALESCE(j.application_instructions, ''),
	COALESCE(j.salary_range, ''), j.posted_date, j.is_active, j.is_approved, j.view_count, j.created_at, j.updated_at`

const jobFrom = `job_advertisements j JOIN member_organizations o ON o.id = j.organization_id`

func scanJobs(rows *sql.Rows) ([]domain.JobAdvertisement, error) {
	defer rows.Close()
	var jobs []domain.JobAdvertisement
	for rows.Next() {
		var j domain.JobAdvertisement
		err := rows.Scan(&j.ID, &j.OrgID, &j.OrganizationName, &j.JobTitle, &j.Location, &j.JobType, &j.Description,
			&j.Requirements, &j.Responsibilities, &j.Qualifications, &j.ApplicationDeadline,
			&j.ApplicationEmail, &j.ApplicationURL, &j.ApplicationInstructions,
			&j.SalaryRange, &j.PostedDate, &j.IsActive, &j.IsApproved, &j.ViewCount, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *jobRepository) ListPublished(ctx context.Context, f domain.JobFilter) ([]domain.JobAdvertisement, int32, error) {
	var c conditions
	c.add("j.is_approved = true AND j.is_active = true")
	if f.JobType != "" {
		c.add("j.job_type = ?", f.JobType)
	}
	if f.Location != "" {
		c.add("j.location = ?", f.Location)
	}
	c.search(f.Search, "j.job_title", "j.description", "j.location")

	total, err := c.count(ctx, r.db, jobFrom)
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM `+jobFrom+c.where()+` ORDER BY j.posted_date DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	jobs, err := scanJobs(rows)
	return jobs, total, err
}

func (r *jobRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.JobAdvertisement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM `+jobFrom+` WHERE j.organization_id = $1 ORDER BY j.posted_date DESC`, orgID)
	if err != nil {
		return nil, err
	}
	return scanJobs(rows)
}

func (r *jobRepository) Create(ctx context.Context, j *domain.JobAdvertisement, gate *domain.ModerationEntry) error {
	return insertGated(ctx, r.db, gate, func(tx *sql.Tx) (int32, error) {
		now := time.Now().UTC()
		j.PostedDate = now
		j.CreatedAt = now
		j.UpdatedAt = now
		j.IsActive = true
		query := `INSERT INTO job_advertisements (organization_id, job_title, location, job_type, description, requirements,
		              responsibilities, qualifications, application_deadline, application_email, application_url,
		              application_instructions, salary_range, posted_date, is_active, is_approved, view_count, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true, $15, 0, $14, $14) RETURNING id`
		err := tx.QueryRowContext(ctx, query, j.OrgID, j.JobTitle, j.Location, j.JobType, j.Description, j.Requirements,
			j.Responsibilities, j.Qualifications, j.ApplicationDeadline, j.ApplicationEmail, j.ApplicationURL,
			j.ApplicationInstructions, j.SalaryRange, now, j.IsApproved).Scan(&j.ID)
		return j.ID, err
	})
}

type trainingRepository struct {
	db *sql.DB
}

func NewTrainingRepository(db *sql.DB) repository.TrainingRepository {
	return &trainingRepository{db: db}
}

const trainingColumns = `id, title, provider, description, start_date, end_date, location, is_online, cost_cents,
	currency, is_free, COALESCE(registration_link, ''), registration_deadline, contact_email,
	COALESCE(contact_phone, ''), max_participants, posted_date, is_active, is_approved, submitted_by,
	created_at, updated_at`

func scanTrainings(rows *sql.Rows) ([]domain.Training, error) {
	defer rows.Close()
	var out []domain.Training
	for rows.Next() {
		var t domain.Training
		err := rows.Scan(&t.ID, &t.TrainingTitle, &t.Provider, &t.Description, &t.StartDate, &t.EndDate, &t.Location,
			&t.IsOnline, &t.CostCents, &t.Currency, &t.IsFree, &t.RegistrationLink, &t.RegistrationDeadline,
			&t.ContactEmail, &t.ContactPhone, &t.MaxParticipants, &t.PostedDate, &t.IsActive, &t.IsApproved,
			&t.SubmittedBy, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *trainingRepository) ListPublished(ctx context.Context, f domain.TrainingFilter) ([]domain.Training, int32, error) {
	var c conditions
	c.add("is_approved = true AND is_active = true")
	if f.IsOnline != nil {
		c.add("is_online = ?", *f.IsOnline)
	}
	if f.IsFree != nil {
		c.add("is_free = ?", *f.IsFree)
	}
	c.search(f.Search, "title", "provider", "description")

	total, err := c.count(ctx, r.db, "trainings")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+trainingColumns+` FROM trainings`+c.where()+` ORDER BY start_date`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := scanTrainings(rows)
	return out, total, err
}

func (r *trainingRepository) ListBySubmitter(ctx context.Context, orgID int32) ([]domain.Training, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE submitted_by = $1 ORDER BY start_date DESC`, orgID)
	if err != nil {
		return nil, err
	}
	return scanTrainings(rows)
}

func (r *trainingRepository) Create(ctx context.Context, t *domain.Training, gate *domain.ModerationEntry) error {
	return insertGated(ctx, r.db, gate, func(tx *sql.Tx) (int32, error) {
		now := time.Now().UTC()
		t.PostedDate = now
		t.CreatedAt = now
		t.UpdatedAt = now
		t.IsActive = true
		query := `INSERT INTO trainings (title, provider, description, start_date, end_date, location, is_online, cost_cents,
		              currency, is_free, registration_link, registration_deadline, contact_email, contact_phone,
		              max_participants, posted_date, is_active, is_approved, submitted_by, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, true, $17, $18, $16, $16) RETURNING id`
		err := tx.QueryRowContext(ctx, query, t.TrainingTitle, t.Provider, t.Description, t.StartDate, t.EndDate, t.Location,
			t.IsOnline, t.CostCents, t.Currency, t.IsFree, t.RegistrationLink, t.RegistrationDeadline, t.ContactEmail,
			t.ContactPhone, t.MaxParticipants, now, t.IsApproved, t.SubmittedBy).Scan(&t.ID)
		return t.ID, err
	})
}

type tenderRepository struct {
	db *sql.DB
}

func NewTenderRepository(db *sql.DB) repository.TenderRepository {
	return &tenderRepository{db: db}
}

const tenderColumns = `t.id, t.organization_id, o.name, t.title, t.reference_number, t.description, t.category,
	t.submission_deadline, t.opening_date, t.contact_person, t.contact_email, COALESCE(t.contact_phone, ''),
	COALESCE(t.document, ''), COALESCE(t.external_link, ''), t.posted_date, t.is_active, t.is_approved,
	t.created_at, t.updated_at`

const tenderFrom = `tender_advertisements t JOIN member_organizations o ON o.id = t.organization_id`

func scanTenders(rows *sql.Rows) ([]domain.TenderAdvertisement, error) {
	defer rows.Close()
	var out []domain.TenderAdvertisement
	for rows.Next() {
		var t domain.TenderAdvertisement
		err := rows.Scan(&t.ID, &t.OrgID, &t.OrganizationName, &t.TenderTitle, &t.ReferenceNumber, &t.Description, &t.Category,
			&t.SubmissionDeadline, &t.OpeningDate, &t.ContactPerson, &t.ContactEmail, &t.ContactPhone,
			&t.DocumentKey, &t.ExternalLink, &t.PostedDate, &t.IsActive, &t.IsApproved,
			&t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenderRepository) ListPublished(ctx context.Context, f domain.TenderFilter) ([]domain.TenderAdvertisement, int32, error) {
	var c conditions
	c.add("t.is_approved = true AND t.is_active = true")
	if f.Category != "" {
		c.add("t.category = ?", f.Category)
	}
	c.search(f.Search, "t.title", "t.description", "t.reference_number")

	total, err := c.count(ctx, r.db, tenderFrom)
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+tenderColumns+` FROM `+tenderFrom+c.where()+` ORDER BY t.submission_deadline`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := scanTenders(rows)
	return out, total, err
}

func (r *tenderRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.TenderAdvertisement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tenderColumns+` FROM `+tenderFrom+` WHERE t.organization_id = $1 ORDER BY t.posted_date DESC`, orgID)
	if err != nil {
		return nil, err
	}
	return scanTenders(rows)
}

// Create returns ErrConflict when the reference number is already taken
func (r *tenderRepository) Create(ctx context.Context, t *domain.TenderAdvertisement, gate *domain.ModerationEntry) error {
	return insertGated(ctx, r.db, gate, func(tx *sql.Tx) (int32, error) {
		now := time.Now().UTC()
		t.PostedDate = now
		t.CreatedAt = now
		t.UpdatedAt = now
		t.IsActive = true
		query := `INSERT INTO tender_advertisements (organization_id, title, reference_number, description, category,
		              submission_deadline, opening_date, contact_person, contact_email, contact_phone, document,
		              external_link, posted_date, is_active, is_approved, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, true, $14, $13, $13) RETURNING id`
		err := tx.QueryRowContext(ctx, query, t.OrgID, t.TenderTitle, t.ReferenceNumber, t.Description, t.Category,
			t.SubmissionDeadline, t.OpeningDate, t.ContactPerson, t.ContactEmail, t.ContactPhone, t.DocumentKey,
			t.ExternalLink, now, t.IsApproved).Scan(&t.ID)
		return t.ID, err
	})
}
