package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
)

type registrationService struct {
	regRepo    repository.RegistrationRepository
	dispatcher Dispatcher
}

func NewRegistrationService(regRepo repository.RegistrationRepository, dispatcher Dispatcher) RegistrationService {
	return &registrationService{regRepo: regRepo, dispatcher: dispatcher}
}

func (s *registrationService) GetMyRegistration(ctx context.Context, ownerID int32) (*domain.Registration, error) {
	return s.regRepo.GetByOwner(ctx, ownerID)
}

func (s *registrationService) SaveDraft(ctx context.Context, ownerID int32, updates *domain.SectionUpdates) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByOwner(ctx, ownerID)
	created := false
	if err != nil {
		if domain.KindOf(err) != domain.KindNotFound {
			return nil, err
		}
		reg = domain.NewRegistration(ownerID)
		created = true
	}
	if reg.Status != domain.StatusDraft {
		return nil, domain.InvalidStateError("registration is %s; rejected sections must go through resubmission", reg.Status)
	}

	for _, key := range updates.Keys() {
		if err := reg.ApplyContent(key, updates); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	submitted := false
	if reg.IsComplete() {
		if err := reg.Submit(now); err != nil {
			return nil, err
		}
		submitted = true
	}

	if created {
		if err := s.regRepo.Create(ctx, reg); err != nil {
			return nil, err
		}
	} else {
		if err := s.regRepo.Update(ctx, reg); err != nil {
			return nil, err
		}
	}

	if submitted {
		s.dispatcher.NotifyAdmins(ctx, domain.NotifNewRegistration,
			"New venue registration",
			fmt.Sprintf("%q has been submitted for review.", reg.VenueName),
			map[string]string{
				"registration_id": strconv.Itoa(int(reg.ID)),
				"link":            fmt.Sprintf("/registration/admin/%d", reg.ID),
			})
	}
	return reg, nil
}

func (s *registrationService) ResubmitRejectedSections(ctx context.Context, ownerID int32, updates *domain.SectionUpdates) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if reg.Status == domain.StatusDraft {
		return nil, domain.InvalidStateError("registration has not been submitted yet")
	}

	keys := updates.Keys()
	if len(keys) == 0 {
		return nil, domain.ValidationError("no sections to resubmit")
	}
	// Validate the whole payload before touching anything: one forbidden
	// section rejects the request and leaves the registration untouched.
	for _, key := range keys {
		status, err := reg.Section(key)
		if err != nil {
			return nil, err
		}
		if status.Status != domain.SectionRejected {
			return nil, domain.ForbiddenFieldError("section %s is %s and cannot be resubmitted", key, status.Status)
		}
	}

	for _, key := range keys {
		if err := reg.ApplyContent(key, updates); err != nil {
			return nil, err
		}
		if err := reg.SetSection(key, domain.PendingSection()); err != nil {
			return nil, err
		}
	}
	// Resubmission is an explicit owner action: it puts the registration back
	// in the review queue even when the overall status was REJECTED.
	if reg.Status == domain.StatusRejected {
		reg.Status = domain.StatusPending
		reg.RejectedAt = nil
	}
	reg.Recompute(time.Now())

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	s.dispatcher.NotifyAdmins(ctx, domain.NotifRegistrationResubmitted,
		"Registration resubmitted",
		fmt.Sprintf("%q has resubmitted %d rejected section(s).", reg.VenueName, len(keys)),
		map[string]string{
			"registration_id": strconv.Itoa(int(reg.ID)),
			"link":            fmt.Sprintf("/registration/admin/%d", reg.ID),
		})
	return reg, nil
}
