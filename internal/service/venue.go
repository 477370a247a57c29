package service

import (
	"context"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
)

type venueService struct {
	venueRepo repository.VenueRepository
}

func NewVenueService(venueRepo repository.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) ListVenues(ctx context.Context, page, pageSize int32) ([]domain.Venue, int32, error) {
	return s.venueRepo.ListVisible(ctx, page, pageSize)
}

// GetVenue returns a venue by id. Delisted venues stay retrievable by direct
// id so owners can still see their own listing state.
func (s *venueService) GetVenue(ctx context.Context, id int32) (*domain.Venue, error) {
	return s.venueRepo.GetByID(ctx, id)
}
