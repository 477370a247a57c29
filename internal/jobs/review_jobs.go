package jobs

import (
	"context"
	"time"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/repository"
)

// SendPendingReviewReminders emails every administrator when registrations
// have been sitting in the review queue longer than the configured window.
func (jr *JobRunner) SendPendingReviewReminders() {
	jr.runWithRecovery("SendPendingReviewReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.ReminderAfterDays)

		stale := int32(0)
		for _, status := range []domain.RegistrationStatus{domain.StatusPending, domain.StatusUnderReview} {
			regs, _, err := jr.store.RegistrationRepository.List(ctx, repository.RegistrationFilter{
				Status:   status,
				Page:     1,
				PageSize: 500,
			})
			if err != nil {
				logger.Error("Failed to list registrations for reminder", "status", status, "error", err)
				return
			}
			for _, reg := range regs {
				if reg.SubmittedAt != nil && reg.SubmittedAt.Before(cutoff) {
					stale++
				}
			}
		}
		if stale == 0 {
			logger.Info("No stale registrations, skipping review reminders")
			return
		}

		admins, err := jr.store.UserRepository.ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to list admins for review reminder", "error", err)
			return
		}
		for _, admin := range admins {
			if err := jr.emailSvc.SendPendingReviewReminder(ctx, admin.Email, admin.Name, stale); err != nil {
				logger.Error("Failed to send review reminder", "admin_id", admin.ID, "error", err)
			}
		}
		logger.Info("Sent pending review reminders", "stale_registrations", stale, "admins", len(admins))
	})
}
