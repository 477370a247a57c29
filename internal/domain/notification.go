package domain

import "time"

type NotificationType string

const (
	NotifNewRegistration         NotificationType = "NEW_REGISTRATION"
	NotifRegistrationResubmitted NotificationType = "REGISTRATION_RESUBMITTED"
	NotifSectionApproved         NotificationType = "SECTION_APPROVED"
	NotifSectionRejected         NotificationType = "SECTION_REJECTED"
	NotifSectionRevoked          NotificationType = "SECTION_REVOKED"
	NotifRegistrationApproved    NotificationType = "REGISTRATION_APPROVED"
	NotifRegistrationRejected    NotificationType = "REGISTRATION_REJECTED"
)

// Notification is a persisted in-app message. Data carries enough context
// (registration id, section, reason, deep link) for review UIs to jump back
// to the exact section under review.
type Notification struct {
	ID        int32             `json:"id"`
	UserID    int32             `json:"user_id"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	IsRead    bool              `json:"is_read"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedOn time.Time         `json:"created_on"`
}
