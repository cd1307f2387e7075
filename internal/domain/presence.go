package domain

import "time"

const (
	MinPresenceYear = 2010
	MaxPresenceYear = 2030
)

type State struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type County struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	StateID   int32  `json:"state"`
	StateName string `json:"state_name"`
}

type Sector struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColorCode   string `json:"color_code"`
}

// OperationalPresence is one 3W row: which organization works in which
// sector in which county in a given year
type OperationalPresence struct {
	ID               int32      `json:"id"`
	OrgID            int32      `json:"organization"`
	OrganizationName string     `json:"organization_name"`
	MemberType       MemberType `json:"organization_type"`
	SectorID         int32      `json:"sector"`
	SectorName       string     `json:"sector_name"`
	CountyID         int32      `json:"county"`
	CountyName       string     `json:"county_name"`
	StateName        string     `json:"state_name"`
	Year             int32      `json:"year"`
	PresenceCount    int32      `json:"presence_count"`
	IsActive         bool       `json:"is_active"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type PresenceFilter struct {
	MemberType MemberType
	SectorID   *int32
	CountyID   *int32
	StateID    *int32
	Year       *int32
	Page
}
