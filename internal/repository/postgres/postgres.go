package postgres

import (
	"database/sql"

	"venuebook-backend/internal/repository"
)

// Store bundles all concrete repositories over one database handle.
type Store struct {
	UserRepository         repository.UserRepository
	RegistrationRepository repository.RegistrationRepository
	VenueRepository        repository.VenueRepository
	NotificationRepository repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		UserRepository:         NewUserRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		VenueRepository:        NewVenueRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
