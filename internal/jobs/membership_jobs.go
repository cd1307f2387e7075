package jobs

import (
	"context"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/telemetry"
	"ngoforum-backend/internal/utils"
)

// CheckMemberships warns organizations whose membership expires within the
// warning window and deactivates those already past expiry. Each organization
// is handled on its own so one failure does not stop the batch.
func (jr *JobRunner) CheckMemberships() {
	jr.runWithRecovery("CheckMemberships", func() int {
		ctx := context.Background()
		today := domain.TruncateDay(jr.now().UTC())
		failed := 0

		horizon := today.AddDate(0, 0, jr.config.Membership.ExpiryWarningDays)
		expiring, err := jr.orgs.ListExpiringBetween(ctx, today, horizon)
		if err != nil {
			logger.Error("Failed to list expiring memberships", "error", err)
			failed++
		}
		for _, org := range expiring {
			daysLeft := utils.DaysBetween(today, *org.MembershipExpiryDate)
			if err := jr.email.SendMembershipExpiring(ctx, org.Email, org.Name, daysLeft, *org.MembershipExpiryDate); err != nil {
				logger.Error("Failed to send expiry warning", "org_id", org.ID, "error", err)
				failed++
				continue
			}
			logger.Debug("Sent expiry warning", "org_id", org.ID, "days_left", daysLeft)
		}

		expired, err := jr.orgs.ListExpiredBefore(ctx, today)
		if err != nil {
			logger.Error("Failed to list expired memberships", "error", err)
			return failed + 1
		}
		deactivated := 0
		for _, org := range expired {
			if err := jr.orgs.Deactivate(ctx, org.ID); err != nil {
				logger.Error("Failed to deactivate organization", "org_id", org.ID, "error", err)
				failed++
				continue
			}
			deactivated++
			telemetry.MembershipsDeactivatedTotal.Inc()

			if err := jr.email.SendMembershipDeactivated(ctx, org.Email, org.Name); err != nil {
				logger.Warn("Failed to send deactivation notice", "org_id", org.ID, "error", err)
			}
		}

		logger.Info("Membership check finished", "warned", len(expiring), "deactivated", deactivated)
		return failed
	})
}
