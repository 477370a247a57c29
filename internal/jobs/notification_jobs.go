package jobs

import (
	"context"
	"time"

	"venuebook-backend/internal/logger"
)

// CleanupReadNotifications deletes read notifications older than the
// configured retention window.
func (jr *JobRunner) CleanupReadNotifications() {
	jr.runWithRecovery("CleanupReadNotifications", func() {
		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.CleanupAfterDays)
		deleted, err := jr.store.NotificationRepository.DeleteReadBefore(context.Background(), cutoff)
		if err != nil {
			logger.Error("Failed to clean up notifications", "error", err)
			return
		}
		logger.Info("Cleaned up read notifications", "deleted", deleted, "cutoff", cutoff)
	})
}
