package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/repository"
)

type reviewService struct {
	regRepo    repository.RegistrationRepository
	userRepo   repository.UserRepository
	publisher  VenuePublisher
	dispatcher Dispatcher
	emailSvc   EmailService
}

func NewReviewService(
	regRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
	publisher VenuePublisher,
	dispatcher Dispatcher,
	emailSvc EmailService,
) ReviewService {
	return &reviewService{
		regRepo:    regRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		dispatcher: dispatcher,
		emailSvc:   emailSvc,
	}
}

// reviewable statuses for ordinary section actions. Revoking a previously
// approved section is the one mutation allowed outside this set.
func isUnderActiveReview(status domain.RegistrationStatus) bool {
	return status == domain.StatusPending || status == domain.StatusUnderReview
}

func sectionLink(registrationID int32, key domain.SectionKey) string {
	return fmt.Sprintf("/registration/%d?section=%s", registrationID, key)
}

func reviewData(reg *domain.Registration, key domain.SectionKey, reason string) map[string]string {
	data := map[string]string{
		"registration_id": strconv.Itoa(int(reg.ID)),
		"section":         string(key),
		"link":            sectionLink(reg.ID, key),
	}
	if reason != "" {
		data["reason"] = reason
	}
	return data
}

func (s *reviewService) ApproveSection(ctx context.Context, adminID, registrationID int32, sectionKey string) (*domain.Registration, error) {
	key, err := domain.ParseSectionKey(sectionKey)
	if err != nil {
		return nil, err
	}

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if !isUnderActiveReview(reg.Status) {
		return nil, domain.InvalidStateError("cannot review section while registration is %s", reg.Status)
	}

	now := time.Now()
	if err := reg.SetSection(key, domain.ApprovedSection(adminID, now)); err != nil {
		return nil, err
	}
	// First review action moves the submission under review.
	if reg.Status == domain.StatusPending {
		reg.Status = domain.StatusUnderReview
	}
	previous := reg.Recompute(now)

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	s.dispatcher.NotifyUser(ctx, reg.OwnerID, domain.NotifSectionApproved,
		"Section approved",
		fmt.Sprintf("Your %s section has been approved.", key),
		reviewData(reg, key, ""))

	if reg.Status == domain.StatusApproved && previous != domain.StatusApproved {
		if err := s.finalizeApproval(ctx, reg); err != nil {
			return reg, err
		}
	}
	return reg, nil
}

func (s *reviewService) RejectSection(ctx context.Context, adminID, registrationID int32, sectionKey, reason string) (*domain.Registration, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ValidationError("rejection reason is required")
	}
	key, err := domain.ParseSectionKey(sectionKey)
	if err != nil {
		return nil, err
	}

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Status == domain.StatusDraft {
		return nil, domain.InvalidStateError("registration has not been submitted yet")
	}

	prior, err := reg.Section(key)
	if err != nil {
		return nil, err
	}
	// Rejecting a previously approved section is a revoke and is legal even
	// on a fully APPROVED registration; an ordinary reject is not.
	isRevoke := prior.Status == domain.SectionApproved
	if !isRevoke && !isUnderActiveReview(reg.Status) {
		return nil, domain.InvalidStateError("cannot review section while registration is %s", reg.Status)
	}

	now := time.Now()
	if err := reg.SetSection(key, domain.RejectedSection(reason, adminID, now)); err != nil {
		return nil, err
	}
	if reg.Status == domain.StatusPending {
		reg.Status = domain.StatusUnderReview
	}
	previous := reg.Recompute(now)

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	if isRevoke {
		s.dispatcher.NotifyUser(ctx, reg.OwnerID, domain.NotifSectionRevoked,
			"Section approval revoked",
			fmt.Sprintf("The approval of your %s section has been revoked: %s", key, reason),
			reviewData(reg, key, reason))
	} else {
		s.dispatcher.NotifyUser(ctx, reg.OwnerID, domain.NotifSectionRejected,
			"Section rejected",
			fmt.Sprintf("Your %s section has been rejected: %s", key, reason),
			reviewData(reg, key, reason))
	}

	// A revoke that pulled an APPROVED registration down delists its venue.
	if previous == domain.StatusApproved && reg.Status == domain.StatusRejected {
		if err := s.publisher.Unpublish(ctx, reg); err != nil {
			return reg, err
		}
	}
	return reg, nil
}

func (s *reviewService) ApproveAll(ctx context.Context, adminID, registrationID int32) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if !isUnderActiveReview(reg.Status) {
		return nil, domain.InvalidStateError("cannot approve registration while it is %s", reg.Status)
	}

	now := time.Now()
	for _, key := range domain.SectionKeys {
		reg.Sections[key] = domain.ApprovedSection(adminID, now)
	}
	reg.Recompute(now)

	// One aggregate write: no partially approved state is ever visible.
	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	if err := s.finalizeApproval(ctx, reg); err != nil {
		return reg, err
	}
	return reg, nil
}

// RejectAll is the administrator's whole-submission override (e.g. suspected
// fraud). Sections that already earned an approval keep it; every other
// section is marked REJECTED with the override reason so the owner can
// correct and resubmit them.
func (s *reviewService) RejectAll(ctx context.Context, adminID, registrationID int32, reason string) (*domain.Registration, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ValidationError("rejection reason is required")
	}

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if !isUnderActiveReview(reg.Status) {
		return nil, domain.InvalidStateError("cannot reject registration while it is %s", reg.Status)
	}

	now := time.Now()
	for _, key := range domain.SectionKeys {
		status, err := reg.Section(key)
		if err != nil {
			return nil, err
		}
		if status.Status == domain.SectionApproved {
			continue
		}
		if err := reg.SetSection(key, domain.RejectedSection(reason, adminID, now)); err != nil {
			return nil, err
		}
	}
	reg.Status = domain.StatusRejected
	reg.RejectedAt = &now

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	s.dispatcher.NotifyUser(ctx, reg.OwnerID, domain.NotifRegistrationRejected,
		"Registration rejected",
		fmt.Sprintf("Your venue registration has been rejected: %s", reason),
		map[string]string{
			"registration_id": strconv.Itoa(int(reg.ID)),
			"reason":          reason,
			"link":            fmt.Sprintf("/registration/%d", reg.ID),
		})
	s.sendRejectionEmail(ctx, reg, reason)

	return reg, nil
}

func (s *reviewService) GetRegistration(ctx context.Context, registrationID int32) (*domain.Registration, error) {
	return s.regRepo.GetByID(ctx, registrationID)
}

func (s *reviewService) ListRegistrations(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, int32, map[domain.RegistrationStatus]int32, error) {
	regs, total, err := s.regRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, nil, err
	}
	counts, err := s.regRepo.CountByStatus(ctx)
	if err != nil {
		return nil, 0, nil, err
	}
	return regs, total, counts, nil
}

// finalizeApproval runs the effects of a transition into APPROVED: publish
// the venue, pin its id on the registration, then tell the owner. A failed
// publication is surfaced — an APPROVED registration without a venue is a
// data-integrity defect — while notification failures are only logged.
func (s *reviewService) finalizeApproval(ctx context.Context, reg *domain.Registration) error {
	venueID, err := s.publisher.PublishApproved(ctx, reg)
	if err != nil {
		return fmt.Errorf("registration %d approved but venue publication failed: %w", reg.ID, err)
	}
	if reg.VenueID == nil || *reg.VenueID != venueID {
		reg.VenueID = &venueID
		if err := s.regRepo.Update(ctx, reg); err != nil {
			return fmt.Errorf("failed to link venue %d to registration %d: %w", venueID, reg.ID, err)
		}
	}

	s.dispatcher.NotifyUser(ctx, reg.OwnerID, domain.NotifRegistrationApproved,
		"Registration approved",
		fmt.Sprintf("Congratulations! Your venue %q is now live.", reg.VenueName),
		map[string]string{
			"registration_id": strconv.Itoa(int(reg.ID)),
			"venue_id":        strconv.Itoa(int(venueID)),
			"link":            fmt.Sprintf("/venues/%d", venueID),
		})

	if s.emailSvc != nil {
		owner, err := s.userRepo.GetByID(ctx, reg.OwnerID)
		if err != nil {
			logger.Error("Failed to load owner for approval email", "owner_id", reg.OwnerID, "error", err)
			return nil
		}
		if err := s.emailSvc.SendRegistrationApproved(ctx, owner.Email, owner.Name, reg.VenueName); err != nil {
			logger.Error("Failed to send approval email", "owner_id", reg.OwnerID, "error", err)
		}
	}
	return nil
}

func (s *reviewService) sendRejectionEmail(ctx context.Context, reg *domain.Registration, reason string) {
	if s.emailSvc == nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, reg.OwnerID)
	if err != nil {
		logger.Error("Failed to load owner for rejection email", "owner_id", reg.OwnerID, "error", err)
		return
	}
	if err := s.emailSvc.SendRegistrationRejected(ctx, owner.Email, owner.Name, reason); err != nil {
		logger.Error("Failed to send rejection email", "owner_id", reg.OwnerID, "error", err)
	}
}
