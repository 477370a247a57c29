package service

import (
	"context"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/repository"
)

// dispatcher persists in-app notifications and pushes them to devices.
// Every failure is logged and swallowed: a lost notification must never roll
// back the review mutation that triggered it.
type dispatcher struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	push     PushSender // nil disables the push channel
}

func NewDispatcher(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, push PushSender) Dispatcher {
	return &dispatcher{noteRepo: noteRepo, userRepo: userRepo, push: push}
}

func (d *dispatcher) NotifyUser(ctx context.Context, userID int32, typ domain.NotificationType, title, message string, data map[string]string) {
	notif := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := d.noteRepo.Create(ctx, notif); err != nil {
		logger.Error("Failed to persist notification", "user_id", userID, "type", typ, "error", err)
	}

	if d.push == nil {
		return
	}
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("Failed to load notification recipient", "user_id", userID, "error", err)
		return
	}
	if user.DeviceToken == nil {
		return
	}
	if err := d.push.Send(ctx, *user.DeviceToken, title, message, data); err != nil {
		logger.Error("Failed to push notification", "user_id", userID, "type", typ, "error", err)
	}
}

func (d *dispatcher) NotifyAdmins(ctx context.Context, typ domain.NotificationType, title, message string, data map[string]string) {
	admins, err := d.userRepo.ListAdmins(ctx)
	if err != nil {
		logger.Error("Failed to list admins for notification fan-out", "type", typ, "error", err)
		return
	}
	for _, admin := range admins {
		notif := &domain.Notification{
			UserID:  admin.ID,
			Type:    typ,
			Title:   title,
			Message: message,
			Data:    data,
		}
		if err := d.noteRepo.Create(ctx, notif); err != nil {
			logger.Error("Failed to persist admin notification", "admin_id", admin.ID, "type", typ, "error", err)
			continue
		}
		if d.push != nil && admin.DeviceToken != nil {
			if err := d.push.Send(ctx, *admin.DeviceToken, title, message, data); err != nil {
				logger.Error("Failed to push admin notification", "admin_id", admin.ID, "type", typ, "error", err)
			}
		}
	}
}
