package service

import (
	"context"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/telemetry"
)

// gate puts fresh content into its initial moderation state for the
// submitting organization. It returns the queue entry to insert alongside
// the content, or nil when the organization is auto-approved.
func gate(ctx context.Context, orgRepo repository.OrganizationRepository, orgID int32, item domain.Moderated, notes string) (*domain.ModerationEntry, error) {
	org, err := orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	status := domain.InitialModeration(org)
	item.ApplyModeration(status)
	if status == domain.ModerationStatusApproved {
		return nil, nil
	}
	return domain.NewPendingEntry(item.ContentRef().Kind, orgID, notes), nil
}

// countSubmission records a queued submission once the insert succeeded
func countSubmission(entry *domain.ModerationEntry) {
	if entry != nil {
		telemetry.ModerationSubmissionsTotal.WithLabelValues(string(entry.Kind)).Inc()
	}
}
