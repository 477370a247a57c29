package service

import (
	"context"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/repository"
)

type venuePublisher struct {
	venueRepo repository.VenueRepository
}

func NewVenuePublisher(venueRepo repository.VenueRepository) VenuePublisher {
	return &venuePublisher{venueRepo: venueRepo}
}

func (p *venuePublisher) PublishApproved(ctx context.Context, reg *domain.Registration) (int32, error) {
	logger.EnterMethod("VenuePublisher.PublishApproved", "registration_id", reg.ID)

	venue := &domain.Venue{
		RegistrationID: reg.ID,
		OwnerID:        reg.OwnerID,
		Name:           reg.VenueName,
		Phone:          reg.Phone,
		Location:       reg.Location,
		ProfileImage:   reg.ProfileImage,
		Images:         reg.VenueImages,
		Visible:        true,
	}
	if err := p.venueRepo.Upsert(ctx, venue); err != nil {
		logger.ExitMethodWithError("VenuePublisher.PublishApproved", err)
		return 0, err
	}

	logger.ExitMethod("VenuePublisher.PublishApproved", "venue_id", venue.ID)
	return venue.ID, nil
}

func (p *venuePublisher) Unpublish(ctx context.Context, reg *domain.Registration) error {
	if reg.VenueID == nil {
		// Approval was revoked before the venue ever went live.
		return nil
	}
	logger.EnterMethod("VenuePublisher.Unpublish", "registration_id", reg.ID, "venue_id", *reg.VenueID)

	if err := p.venueRepo.SetVisibility(ctx, *reg.VenueID, false); err != nil {
		logger.ExitMethodWithError("VenuePublisher.Unpublish", err)
		return err
	}
	logger.ExitMethod("VenuePublisher.Unpublish")
	return nil
}
