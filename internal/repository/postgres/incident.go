package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
)

type incidentRepository struct {
	db *sql.DB
}

func NewIncidentRepository(db *sql.DB) repository.IncidentRepository {
	return &incidentRepository{db: db}
}

const incidentColumns = `id, organization_id, reporter_name, reporter_email, COALESCE(reporter_phone, ''), who,
	where_state_id, where_county_id, where_location, when_date, COALESCE(when_time, ''), what_happened,
	COALESCE(what_you_did, ''), COALESCE(what_you_need, ''), incident_type, severity, status, is_confidential,
	COALESCE(follow_up_notes, ''), resolved_date, created_at, updated_at`

func scanIncident(row interface{ Scan(...any) error }) (*domain.SecurityIncident, error) {
	i := &domain.SecurityIncident{}
	err := row.Scan(&i.ID, &i.OrgID, &i.ReporterName, &i.ReporterEmail, &i.ReporterPhone, &i.Who,
		&i.WhereStateID, &i.WhereCountyID, &i.WhereLocation, &i.WhenDate, &i.WhenTime, &i.WhatHappened,
		&i.WhatYouDid, &i.WhatYouNeed, &i.IncidentType, &i.Severity, &i.Status, &i.IsConfidential,
		&i.FollowUpNotes, &i.ResolvedDate, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// incidentScope: members see their own reports plus every non-confidential one
func incidentScope(c *conditions, v repository.Viewer) {
	if !v.IsStaff {
		c.add("(organization_id = ? OR is_confidential = false)", v.OrgID)
	}
}

// constraintScope: members see only their own reports
func constraintScope(c *conditions, v repository.Viewer) {
	if !v.IsStaff {
		c.add("organization_id = ?", v.OrgID)
	}
}

func (r *incidentRepository) CreateIncident(ctx context.Context, i *domain.SecurityIncident) error {
	logger.EnterMethod("incidentRepository.CreateIncident", "severity", i.Severity)
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now
	query := `INSERT INTO security_incidents (organization_id, reporter_name, reporter_email, reporter_phone, who,
	              where_state_id, where_county_id, where_location, when_date, when_time, what_happened, what_you_did,
	              what_you_need, incident_type, severity, status, is_confidential, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13, $14, $15, $16, $17, $18, $18) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, i.OrgID, i.ReporterName, i.ReporterEmail, i.ReporterPhone, i.Who,
		i.WhereStateID, i.WhereCountyID, i.WhereLocation, i.WhenDate, i.WhenTime, i.WhatHappened, i.WhatYouDid,
		i.WhatYouNeed, i.IncidentType, i.Severity, i.Status, i.IsConfidential, now).Scan(&i.ID)
	if err != nil {
		logger.ExitMethodWithError("incidentRepository.CreateIncident", err)
		return mapError(err)
	}
	logger.ExitMethod("incidentRepository.CreateIncident", "incidentID", i.ID)
	return nil
}

func (r *incidentRepository) GetIncident(ctx context.Context, id int32, v repository.Viewer) (*domain.SecurityIncident, error) {
	var c conditions
	c.add("id = ?", id)
	incidentScope(&c, v)
	i, err := scanIncident(r.db.QueryRowContext(ctx, `SELECT `+incidentColumns+` FROM security_incidents`+c.where(), c.args...))
	return i, mapError(err)
}

func (r *incidentRepository) ListIncidents(ctx context.Context, f domain.IncidentFilter, v repository.Viewer) ([]domain.SecurityIncident, int32, error) {
	var c conditions
	incidentScope(&c, v)
	if f.Severity != "" {
		c.add("severity = ?", f.Severity)
	}
	if f.Status != "" {
		c.add("status = ?", f.Status)
	}

	total, err := c.count(ctx, r.db, "security_incidents")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+incidentColumns+` FROM security_incidents`+c.where()+` ORDER BY when_date DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.SecurityIncident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *i)
	}
	return out, total, rows.Err()
}

func (r *incidentRepository) UpdateIncident(ctx context.Context, i *domain.SecurityIncident) error {
	i.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE security_incidents SET status = $1, follow_up_notes = $2, resolved_date = $3, updated_at = $4 WHERE id = $5`,
		i.Status, i.FollowUpNotes, i.ResolvedDate, i.UpdatedAt, i.ID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrNotFound)
}

const constraintColumns = `id, organization_id, reporter_name, reporter_email, COALESCE(reporter_phone, ''), location,
	county_id, constraint_type, description, date_reported, date_started, COALESCE(affected_activities, ''),
	COALESCE(estimated_impact, ''), status, COALESCE(resolution_notes, ''), resolved_date, created_at, updated_at`

func scanConstraint(row interface{ Scan(...any) error }) (*domain.AccessConstraint, error) {
	a := &domain.AccessConstraint{}
	err := row.Scan(&a.ID, &a.OrgID, &a.ReporterName, &a.ReporterEmail, &a.ReporterPhone, &a.Location,
		&a.CountyID, &a.ConstraintType, &a.Description, &a.DateReported, &a.DateStarted, &a.AffectedActivities,
		&a.EstimatedImpact, &a.Status, &a.ResolutionNotes, &a.ResolvedDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *incidentRepository) CreateConstraint(ctx context.Context, a *domain.AccessConstraint) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.DateReported.IsZero() {
		a.DateReported = now
	}
	query := `INSERT INTO access_constraints (organization_id, reporter_name, reporter_email, reporter_phone, location,
	              county_id, constraint_type, description, date_reported, date_started, affected_activities,
	              estimated_impact, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14) RETURNING id`
	return mapError(r.db.QueryRowContext(ctx, query, a.OrgID, a.ReporterName, a.ReporterEmail, a.ReporterPhone, a.Location,
		a.CountyID, a.ConstraintType, a.Description, a.DateReported, a.DateStarted, a.AffectedActivities,
		a.EstimatedImpact, a.Status, now).Scan(&a.ID))
}

func (r *incidentRepository) GetConstraint(ctx context.Context, id int32, v repository.Viewer) (*domain.AccessConstraint, error) {
	var c conditions
	c.add("id = ?", id)
	constraintScope(&c, v)
	a, err := scanConstraint(r.db.QueryRowContext(ctx, `SELECT `+constraintColumns+` FROM access_constraints`+c.where(), c.args...))
	return a, mapError(err)
}

func (r *incidentRepository) ListConstraints(ctx context.Context, f domain.ConstraintFilter, v repository.Viewer) ([]domain.AccessConstraint, int32, error) {
	var c conditions
	constraintScope(&c, v)
	if f.ConstraintType != "" {
		c.add("constraint_type = ?", f.ConstraintType)
	}
	if f.Status != "" {
		c.add("status = ?", f.Status)
	}
	if f.CountyID != nil {
		c.add("county_id = ?", *f.CountyID)
	}

	total, err := c.count(ctx, r.db, "access_constraints")
	if err != nil {
		return nil, 0, err
	}
	limit, args := c.paged(f.Page)
	rows, err := r.db.QueryContext(ctx, `SELECT `+constraintColumns+` FROM access_constraints`+c.where()+` ORDER BY date_reported DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.AccessConstraint
	for rows.Next() {
		a, err := scanConstraint(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *a)
	}
	return out, total, rows.Err()
}

func (r *incidentRepository) UpdateConstraint(ctx context.Context, a *domain.AccessConstraint) error {
	a.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE access_constraints SET status = $1, resolution_notes = $2, resolved_date = $3, updated_at = $4 WHERE id = $5`,
		a.Status, a.ResolutionNotes, a.ResolvedDate, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrNotFound)
}
