package repository

import (
	"context"
	"time"

	"venuebook-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

// RegistrationFilter narrows the admin listing. Status empty means all;
// Search matches venue name or owner name.
type RegistrationFilter struct {
	Status   domain.RegistrationStatus
	Search   string
	Page     int32
	PageSize int32
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id int32) (*domain.Registration, error)
	GetByOwner(ctx context.Context, ownerID int32) (*domain.Registration, error)

	// Update persists the whole aggregate guarded by the version the caller
	// read. A stale version returns a CONFLICT domain error and writes
	// nothing; the caller re-reads and re-applies.
	Update(ctx context.Context, reg *domain.Registration) error

	List(ctx context.Context, filter RegistrationFilter) ([]domain.Registration, int32, error)
	CountByStatus(ctx context.Context) (map[domain.RegistrationStatus]int32, error)
}

type VenueRepository interface {
	// Upsert creates the venue for a registration or updates its mirrored
	// fields, keyed by registration id. Sets v.ID either way.
	Upsert(ctx context.Context, v *domain.Venue) error
	GetByID(ctx context.Context, id int32) (*domain.Venue, error)
	ListVisible(ctx context.Context, page, pageSize int32) ([]domain.Venue, int32, error)
	SetVisibility(ctx context.Context, venueID int32, visible bool) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	UnreadCount(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	MarkAllRead(ctx context.Context, userID int32) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
