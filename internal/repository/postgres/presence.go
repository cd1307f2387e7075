package postgres

import (
	"context"
	"database/sql"
	"time"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
)

type presenceRepository struct {
	db *sql.DB
}

func NewPresenceRepository(db *sql.DB) repository.PresenceRepository {
	return &presenceRepository{db: db}
}

const presenceColumns = `p.id, p.organization_id, o.name, o.member_type, p.sector_id, s.name, p.county_id, c.name,
	st.name, p.year, p.presence_count, p.is_active, COALESCE(p.notes, ''), p.created_at, p.updated_at`

const presenceFrom = `operational_presence p
	JOIN member_organizations o ON o.id = p.organization_id
	JOIN sectors s ON s.id = p.sector_id
	JOIN counties c ON c.id = p.county_id
	JOIN states st ON st.id = c.state_id`

func scanPresences(rows *sql.Rows) ([]domain.OperationalPresence, error) {
	defer rows.Close()
	var out []domain.OperationalPresence
	for rows.Next() {
		var p domain.OperationalPresence
		err := rows.Scan(&p.ID, &p.OrgID, &p.OrganizationName, &p.MemberType, &p.SectorID, &p.SectorName, &p.CountyID, &p.CountyName,
			&p.StateName, &p.Year, &p.PresenceCount, &p.IsActive, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *presenceRepository) ListStates(ctx context.Context) ([]domain.State, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, code FROM states ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []domain.State
	for rows.Next() {
		var s domain.State
		if err := rows.Scan(&s.ID, &s.Name, &s.Code); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *presenceRepository) ListCounties(ctx context.Context, stateID *int32) ([]domain.County, error) {
	var c conditions
	if stateID != nil {
		c.add("c.state_id = ?", *stateID)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.state_id, st.name FROM counties c JOIN states st ON st.id = c.state_id`+c.where()+` ORDER BY st.name, c.name`,
		c.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counties []domain.County
	for rows.Next() {
		var county domain.County
		if err := rows.Scan(&county.ID, &county.Name, &county.StateID, &county.StateName); err != nil {
			return nil, err
		}
		counties = append(counties, county)
	}
	return counties, rows.Err()
}

func (r *presenceRepository) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(description, ''), COALESCE(color_code, '') FROM sectors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sectors []domain.Sector
	for rows.Next() {
		var s domain.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ColorCode); err != nil {
			return nil, err
		}
		sectors = append(sectors, s)
	}
	return sectors, rows.Err()
}

func (r *presenceRepository) ListActive(ctx context.Context, f domain.PresenceFilter) ([]domain.OperationalPresence, int32, error) {
	var c conditions
	c.add("p.is_active = true")
	if f.MemberType != "" {
		c.add("o.member_type = ?", f.MemberType)
	}
	if f.SectorID != nil {
		c.add("p.sector_id = ?", *f.SectorID)
	}
	if f.CountyID != nil {
		c.add("p.county_id = ?", *f.CountyID)
	}
	if f.StateID != nil {
		c.add("c.state_id = ?", *f.StateID)
	}
	if f.Year != nil {
		c.add("p.year = ?", *f.Year)
	}

	total, err := c.count(ctx, r.db, presenceFrom)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + presenceColumns + ` FROM ` + presenceFrom + c.where() + ` ORDER BY p.year DESC, o.name`
	args := c.args
	if f.PageSize > 0 {
		var limit string
		limit, args = c.paged(f.Page)
		query += limit
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := scanPresences(rows)
	return out, total, err
}

func (r *presenceRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.OperationalPresence, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+presenceColumns+` FROM `+presenceFrom+` WHERE p.organization_id = $1 ORDER BY p.year DESC, s.name`, orgID)
	if err != nil {
		return nil, err
	}
	return scanPresences(rows)
}

// Create returns ErrConflict for a duplicate (organization, sector, county, year)
func (r *presenceRepository) Create(ctx context.Context, p *domain.OperationalPresence) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.IsActive = true
	query := `INSERT INTO operational_presence (organization_id, sector_id, county_id, year, presence_count, is_active, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, true, $6, $7, $7) RETURNING id`
	return mapError(r.db.QueryRowContext(ctx, query, p.OrgID, p.SectorID, p.CountyID, p.Year, p.PresenceCount, p.Notes, now).Scan(&p.ID))
}

func (r *presenceRepository) Delete(ctx context.Context, id, orgID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM operational_presence WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrNotFound)
}
