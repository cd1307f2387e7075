package domain

import "time"

type MemberType string

const (
	MemberTypeNational      MemberType = "NATIONAL"
	MemberTypeInternational MemberType = "INTERNATIONAL"
)

func (t MemberType) Valid() bool {
	return t == MemberTypeNational || t == MemberTypeInternational
}

type OrgStatus string

const (
	OrgStatusActive    OrgStatus = "ACTIVE"
	OrgStatusPending   OrgStatus = "PENDING"
	OrgStatusInactive  OrgStatus = "INACTIVE"
	OrgStatusSuspended OrgStatus = "SUSPENDED"
)

func (s OrgStatus) Valid() bool {
	switch s {
	case OrgStatusActive, OrgStatusPending, OrgStatusInactive, OrgStatusSuspended:
		return true
	}
	return false
}

const DefaultCity = "Juba"

// ExpiryWarningWindow is how far ahead an expiring membership is flagged
const ExpiryWarningWindow = 30 * 24 * time.Hour

type MemberOrganization struct {
	ID                   int32                 `json:"id"`
	Name                 string                `json:"name"`
	Slug                 string                `json:"slug"`
	MemberType           MemberType            `json:"member_type"`
	RRCNumber            string                `json:"rrc_number"`
	RegistrationDate     *time.Time            `json:"registration_date"`
	Email                string                `json:"email"`
	Phone                string                `json:"phone"`
	Website              string                `json:"website"`
	Address              string                `json:"address"`
	City                 string                `json:"city"`
	State                string                `json:"state"`
	Description          string                `json:"description"`
	LogoKey              string                `json:"logo"`
	Status               OrgStatus             `json:"status"`
	DateJoined           time.Time             `json:"date_joined"`
	IsVerified           bool                  `json:"is_verified"`
	AutoApproveContent   bool                  `json:"auto_approve_content"`
	MembershipFeePaid    bool                  `json:"membership_fee_paid"`
	MembershipExpiryDate *time.Time            `json:"membership_expiry_date"`
	Contacts             []OrganizationContact `json:"contacts,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// IsMembershipExpiringSoon reports whether the expiry date falls within the
// next 30 days, today included
func (o *MemberOrganization) IsMembershipExpiringSoon(today time.Time) bool {
	if o.MembershipExpiryDate == nil {
		return false
	}
	day := TruncateDay(today)
	expiry := TruncateDay(*o.MembershipExpiryDate)
	return !expiry.Before(day) && !expiry.After(day.Add(ExpiryWarningWindow))
}

// OrganizationProfileUpdate holds the member-writable fields of an organization
type OrganizationProfileUpdate struct {
	Name        string `json:"name"`
	RRCNumber   string `json:"rrc_number"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Description string `json:"description"`
	LogoKey     string `json:"logo"`
}

type OrganizationContact struct {
	ID        int32     `json:"id"`
	OrgID     int32     `json:"-"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationFilter drives the public member directory
type OrganizationFilter struct {
	MemberType MemberType
	State      string
	City       string
	IsVerified *bool
	Search     string
	Page
}

// TruncateDay drops the clock part, keeping the calendar date in UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
