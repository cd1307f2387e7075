package domain

import "time"

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsStaff      bool      `json:"is_staff"`
	OrgID        *int32    `json:"org_id,omitempty"` // member organization owned by this account
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated caller as seen by services
type Principal struct {
	UserID  int32
	Email   string
	OrgID   *int32
	IsStaff bool
}

// MemberOrgID returns the caller's organization or ErrPermissionDenied
func (p Principal) MemberOrgID() (int32, error) {
	if p.OrgID == nil || *p.OrgID == 0 {
		return 0, ErrPermissionDenied
	}
	return *p.OrgID, nil
}
