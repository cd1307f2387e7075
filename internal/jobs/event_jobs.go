package jobs

import (
	"context"

	"ngoforum-backend/internal/domain"
	"ngoforum-backend/internal/logger"
)

// SendEventReminders emails every registered attendee of an approved event
// taking place tomorrow
func (jr *JobRunner) SendEventReminders() {
	jr.runWithRecovery("SendEventReminders", func() int {
		ctx := context.Background()
		tomorrow := domain.TruncateDay(jr.now().UTC()).AddDate(0, 0, 1)

		targets, err := jr.events.ListReminderTargets(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list event reminder targets", "error", err)
			return 1
		}

		failed := 0
		for i := range targets {
			t := &targets[i]
			if err := jr.email.SendEventReminder(ctx, t.Attendance.AttendeeEmail, t.Attendance.AttendeeName, &t.Event); err != nil {
				logger.Error("Failed to send event reminder",
					"event_id", t.Event.ID, "attendance_id", t.Attendance.ID, "error", err)
				failed++
			}
		}

		logger.Info("Event reminders sent", "day", tomorrow.Format("2006-01-02"), "sent", len(targets)-failed)
		return failed
	})
}
