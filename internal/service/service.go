package service

import (
	"context"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	RegisterDeviceToken(ctx context.Context, userID int32, deviceToken string) error
}

// RegistrationService covers the venue owner's side of the workflow.
type RegistrationService interface {
	GetMyRegistration(ctx context.Context, ownerID int32) (*domain.Registration, error)

	// SaveDraft creates or updates the owner's draft content and submits the
	// registration for review once all nine sections are present.
	SaveDraft(ctx context.Context, ownerID int32, updates *domain.SectionUpdates) (*domain.Registration, error)

	// ResubmitRejectedSections replaces the content of REJECTED sections and
	// returns them to PENDING. Touching a non-rejected section fails with a
	// FORBIDDEN_FIELD error and nothing is written.
	ResubmitRejectedSections(ctx context.Context, ownerID int32, updates *domain.SectionUpdates) (*domain.Registration, error)
}

// ReviewService covers the administrator's side: per-section review plus the
// whole-registration shortcuts.
type ReviewService interface {
	ApproveSection(ctx context.Context, adminID, registrationID int32, sectionKey string) (*domain.Registration, error)
	RejectSection(ctx context.Context, adminID, registrationID int32, sectionKey, reason string) (*domain.Registration, error)
	ApproveAll(ctx context.Context, adminID, registrationID int32) (*domain.Registration, error)
	RejectAll(ctx context.Context, adminID, registrationID int32, reason string) (*domain.Registration, error)
	GetRegistration(ctx context.Context, registrationID int32) (*domain.Registration, error)
	ListRegistrations(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, int32, map[domain.RegistrationStatus]int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	UnreadCount(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	MarkAllRead(ctx context.Context, userID int32) error
}

type VenueService interface {
	ListVenues(ctx context.Context, page, pageSize int32) ([]domain.Venue, int32, error)
	GetVenue(ctx context.Context, id int32) (*domain.Venue, error)
}

// VenuePublisher promotes approved registrations into listable venues and
// hides them again when an approval is revoked.
type VenuePublisher interface {
	// PublishApproved creates or refreshes the venue for a registration and
	// returns its id. Idempotent: a retry with the same registration state
	// never creates a duplicate.
	PublishApproved(ctx context.Context, reg *domain.Registration) (int32, error)

	// Unpublish hides the venue of a registration whose approval was revoked.
	// No-op when the registration was never published.
	Unpublish(ctx context.Context, reg *domain.Registration) error
}

// Dispatcher fans review outcomes out to the owner and administrators.
// Dispatch is fire-and-forget relative to the triggering mutation: failures
// are logged, never returned.
type Dispatcher interface {
	NotifyUser(ctx context.Context, userID int32, typ domain.NotificationType, title, message string, data map[string]string)
	NotifyAdmins(ctx context.Context, typ domain.NotificationType, title, message string, data map[string]string)
}

type EmailService interface {
	SendRegistrationApproved(ctx context.Context, email, name, venueName string) error
	SendRegistrationRejected(ctx context.Context, email, name, reason string) error
	SendPendingReviewReminder(ctx context.Context, email, name string, pendingCount int32) error
}

// PushSender delivers a push message to one device. Implemented over FCM;
// a nil sender disables the channel.
type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}
