package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
)

// PresenceCSVHeader is the first row of the 3W export
var PresenceCSVHeader = []string{"Organization", "Type", "Sector", "County", "State", "Year", "Presence Count"}

type presenceService struct {
	repo repository.PresenceRepository
}

func NewPresenceService(repo repository.PresenceRepository) PresenceService {
	return &presenceService{repo: repo}
}

func (s *presenceService) ListStates(ctx context.Context) ([]domain.State, error) {
	return s.repo.ListStates(ctx)
}

func (s *presenceService) ListCounties(ctx context.Context, stateID *int32) ([]domain.County, error) {
	return s.repo.ListCounties(ctx, stateID)
}

func (s *presenceService) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	return s.repo.ListSectors(ctx)
}

func (s *presenceService) List(ctx context.Context, filter domain.PresenceFilter) ([]domain.OperationalPresence, int32, error) {
	filter.Page = filter.Page.Normalize()
	return s.repo.ListActive(ctx, filter)
}

func (s *presenceService) ExportCSV(ctx context.Context, filter domain.PresenceFilter, w io.Writer) error {
	filter.Page = domain.Page{}
	records, _, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(PresenceCSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.OrganizationName,
			string(r.MemberType),
			r.SectorName,
			r.CountyName,
			r.StateName,
			strconv.Itoa(int(r.Year)),
			strconv.Itoa(int(r.PresenceCount)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *presenceService) Create(ctx context.Context, orgID int32, p *domain.OperationalPresence) error {
	v := domain.NewValidationError()
	if p.SectorID == 0 {
		v.Add("sector", "This field is required.")
	}
	if p.CountyID == 0 {
		v.Add("county", "This field is required.")
	}
	if p.Year < domain.MinPresenceYear || p.Year > domain.MaxPresenceYear {
		v.Add("year", fmt.Sprintf("Year must be between %d and %d.", domain.MinPresenceYear, domain.MaxPresenceYear))
	}
	if p.PresenceCount == 0 {
		p.PresenceCount = 1
	} else if p.PresenceCount < 1 {
		v.Add("presence_count", "Ensure this value is greater than or equal to 1.")
	}
	if err := v.Err(); err != nil {
		return err
	}

	p.OrgID = orgID
	p.IsActive = true
	if err := s.repo.Create(ctx, p); err != nil {
		if isConflict(err) {
			v.Add("non_field_errors", "A record for this sector, county and year already exists.")
			return v
		}
		return err
	}
	return nil
}

func (s *presenceService) ListMine(ctx context.Context, orgID int32) ([]domain.OperationalPresence, error) {
	return s.repo.ListByOrg(ctx, orgID)
}

func (s *presenceService) Delete(ctx context.Context, orgID, id int32) error {
	return s.repo.Delete(ctx, id, orgID)
}
