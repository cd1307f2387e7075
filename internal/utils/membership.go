package utils

import (
	"time"

	"ngoforum-backend/internal/domain"
)

const DefaultMembershipTermDays = 365

// NextMembershipExpiry returns the expiry date after one more paid term.
// An unexpired membership is extended from its current expiry, anything
// else restarts from today.
func NextMembershipExpiry(current *time.Time, today time.Time) time.Time {
	return ExtendMembership(current, today, DefaultMembershipTermDays)
}

// ExtendMembership is NextMembershipExpiry with a configurable term
func ExtendMembership(current *time.Time, today time.Time, termDays int) time.Time {
	day := domain.TruncateDay(today)
	if current != nil {
		expiry := domain.TruncateDay(*current)
		if expiry.After(day) {
			return expiry.AddDate(0, 0, termDays)
		}
	}
	return day.AddDate(0, 0, termDays)
}

// ApplyMembershipPayment moves an organization into the paid-up state after
// a completed payment
func ApplyMembershipPayment(org *domain.MemberOrganization, today time.Time, termDays int) {
	expiry := ExtendMembership(org.MembershipExpiryDate, today, termDays)
	org.MembershipExpiryDate = &expiry
	org.MembershipFeePaid = true
	org.IsVerified = true
	org.AutoApproveContent = true
	if org.Status == domain.OrgStatusPending {
		org.Status = domain.OrgStatusActive
	}
}

// DeactivateMembership is the lapsed-membership state applied by the expiry check
func DeactivateMembership(org *domain.MemberOrganization) {
	org.Status = domain.OrgStatusInactive
	org.IsVerified = false
	org.AutoApproveContent = false
}
