package domain

import "time"

// SectionState is the review state of a single registration section.
type SectionState string

const (
	SectionNotSubmitted SectionState = "NOT_SUBMITTED"
	SectionPending      SectionState = "PENDING"
	SectionApproved     SectionState = "APPROVED"
	SectionRejected     SectionState = "REJECTED"
)

// SectionKey names one independently reviewable field of a registration.
type SectionKey string

const (
	SectionVenueName            SectionKey = "venueName"
	SectionPhone                SectionKey = "phone"
	SectionLocation             SectionKey = "location"
	SectionProfileImage         SectionKey = "profileImage"
	SectionVenueImages          SectionKey = "venueImages"
	SectionCitizenshipFront     SectionKey = "citizenshipFront"
	SectionCitizenshipBack      SectionKey = "citizenshipBack"
	SectionBusinessRegistration SectionKey = "businessRegistration"
	SectionPanCard              SectionKey = "panCard"
)

// SectionKeys is the canonical iteration order of the nine reviewable sections.
var SectionKeys = []SectionKey{
	SectionVenueName,
	SectionPhone,
	SectionLocation,
	SectionProfileImage,
	SectionVenueImages,
	SectionCitizenshipFront,
	SectionCitizenshipBack,
	SectionBusinessRegistration,
	SectionPanCard,
}

// ParseSectionKey validates a client-supplied section name.
func ParseSectionKey(s string) (SectionKey, error) {
	for _, key := range SectionKeys {
		if string(key) == s {
			return key, nil
		}
	}
	return "", ValidationError("unknown section key: %q", s)
}

// SectionStatus is the review record attached to one section.
// RejectionReason is set iff Status is REJECTED.
type SectionStatus struct {
	Status          SectionState `json:"status"`
	RejectionReason *string      `json:"rejection_reason,omitempty"`
	ReviewedBy      *int32       `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewed_at,omitempty"`
}

// ApprovedSection builds an APPROVED status stamped with the reviewer.
func ApprovedSection(reviewerID int32, at time.Time) SectionStatus {
	return SectionStatus{Status: SectionApproved, ReviewedBy: &reviewerID, ReviewedAt: &at}
}

// RejectedSection builds a REJECTED status carrying the mandatory reason.
func RejectedSection(reason string, reviewerID int32, at time.Time) SectionStatus {
	return SectionStatus{Status: SectionRejected, RejectionReason: &reason, ReviewedBy: &reviewerID, ReviewedAt: &at}
}

// PendingSection builds a PENDING status with no review stamp.
func PendingSection() SectionStatus {
	return SectionStatus{Status: SectionPending}
}

// Sections maps each reviewable field to its review record.
type Sections map[SectionKey]SectionStatus

// RegistrationStatus is the derived overall status of a registration.
type RegistrationStatus string

const (
	StatusDraft       RegistrationStatus = "DRAFT"
	StatusPending     RegistrationStatus = "PENDING"
	StatusUnderReview RegistrationStatus = "UNDER_REVIEW"
	StatusApproved    RegistrationStatus = "APPROVED"
	StatusRejected    RegistrationStatus = "REJECTED"
)

// RegistrationStatuses lists all overall statuses, used by admin listing counts.
var RegistrationStatuses = []RegistrationStatus{
	StatusDraft, StatusPending, StatusUnderReview, StatusApproved, StatusRejected,
}

// ImageRef points at an externally stored file. The backend never interprets
// file bytes; it only carries the URL and the storage public ID.
type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Location is the structured venue address payload.
type Location struct {
	Address  string `json:"address"`
	City     string `json:"city"`
	Province string `json:"province"`
	ZipCode  string `json:"zip_code,omitempty"`
}

// Registration is the aggregate root of the venue review workflow.
// One per owner. Status is derived from the section states and must never be
// written directly by callers; every section mutation goes through Recompute.
type Registration struct {
	ID      int32 `json:"id"`
	OwnerID int32 `json:"owner_id"`

	// Section content payloads. Reviewed per section, not as a whole.
	VenueName            string     `json:"venue_name"`
	Phone                string     `json:"phone"`
	Location             Location   `json:"location"`
	ProfileImage         *ImageRef  `json:"profile_image,omitempty"`
	VenueImages          []ImageRef `json:"venue_images,omitempty"`
	CitizenshipFront     *ImageRef  `json:"citizenship_front,omitempty"`
	CitizenshipBack      *ImageRef  `json:"citizenship_back,omitempty"`
	BusinessRegistration *ImageRef  `json:"business_registration,omitempty"`
	PanCard              *ImageRef  `json:"pan_card,omitempty"`

	Sections Sections           `json:"sections"`
	Status   RegistrationStatus `json:"registration_status"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`

	// VenueID is set once the registration has been published.
	VenueID *int32 `json:"venue_id,omitempty"`

	// Version guards concurrent read-modify-write cycles (optimistic locking).
	Version int32 `json:"-"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// NewRegistration creates a DRAFT registration with every section NOT_SUBMITTED.
func NewRegistration(ownerID int32) *Registration {
	sections := make(Sections, len(SectionKeys))
	for _, key := range SectionKeys {
		sections[key] = SectionStatus{Status: SectionNotSubmitted}
	}
	return &Registration{
		OwnerID:  ownerID,
		Sections: sections,
		Status:   StatusDraft,
	}
}

// Section returns the review record for a key, validating the key.
func (r *Registration) Section(key SectionKey) (SectionStatus, error) {
	st, ok := r.Sections[key]
	if !ok {
		return SectionStatus{}, ValidationError("unknown section key: %q", key)
	}
	return st, nil
}

// SetSection replaces one section's review record. Callers must follow up
// with Recompute; the two are kept separate so the derivation stays testable
// as a pure function.
func (r *Registration) SetSection(key SectionKey, st SectionStatus) error {
	if _, ok := r.Sections[key]; !ok {
		return ValidationError("unknown section key: %q", key)
	}
	r.Sections[key] = st
	return nil
}

// DeriveOverallStatus computes the overall status from the section states.
// Pure and total:
//  1. any section REJECTED while currently APPROVED -> REJECTED (revoke cascade)
//  2. all nine sections APPROVED -> APPROVED
//  3. otherwise unchanged; PENDING/UNDER_REVIEW moves are explicit actions,
//     never derived here.
func DeriveOverallStatus(current RegistrationStatus, sections Sections) RegistrationStatus {
	anyRejected := false
	allApproved := true
	for _, key := range SectionKeys {
		switch sections[key].Status {
		case SectionRejected:
			anyRejected = true
			allApproved = false
		case SectionApproved:
		default:
			allApproved = false
		}
	}
	switch {
	case anyRejected && current == StatusApproved:
		return StatusRejected
	case allApproved:
		return StatusApproved
	default:
		return current
	}
}

// Recompute applies DeriveOverallStatus to the aggregate, stamping ApprovedAt
// or RejectedAt exactly once per transition into the terminal status. Returns
// the status the registration held before recomputation. Must run after every
// section mutation.
func (r *Registration) Recompute(now time.Time) RegistrationStatus {
	previous := r.Status
	next := DeriveOverallStatus(previous, r.Sections)
	if next == previous {
		return previous
	}
	r.Status = next
	switch next {
	case StatusApproved:
		r.ApprovedAt = &now
	case StatusRejected:
		r.RejectedAt = &now
	}
	return previous
}

// MissingSections lists sections whose content has not been provided yet.
func (r *Registration) MissingSections() []SectionKey {
	var missing []SectionKey
	if r.VenueName == "" {
		missing = append(missing, SectionVenueName)
	}
	if r.Phone == "" {
		missing = append(missing, SectionPhone)
	}
	if r.Location.Address == "" || r.Location.City == "" {
		missing = append(missing, SectionLocation)
	}
	if r.ProfileImage == nil {
		missing = append(missing, SectionProfileImage)
	}
	if len(r.VenueImages) == 0 {
		missing = append(missing, SectionVenueImages)
	}
	if r.CitizenshipFront == nil {
		missing = append(missing, SectionCitizenshipFront)
	}
	if r.CitizenshipBack == nil {
		missing = append(missing, SectionCitizenshipBack)
	}
	if r.BusinessRegistration == nil {
		missing = append(missing, SectionBusinessRegistration)
	}
	if r.PanCard == nil {
		missing = append(missing, SectionPanCard)
	}
	return missing
}

// IsComplete reports whether all nine section payloads are present.
func (r *Registration) IsComplete() bool {
	return len(r.MissingSections()) == 0
}

// Submit moves a complete DRAFT registration into review: every section
// becomes PENDING and the overall status becomes PENDING.
func (r *Registration) Submit(now time.Time) error {
	if r.Status != StatusDraft {
		return InvalidStateError("registration already submitted (status %s)", r.Status)
	}
	if missing := r.MissingSections(); len(missing) > 0 {
		return ValidationError("registration incomplete, missing sections: %v", missing)
	}
	for _, key := range SectionKeys {
		r.Sections[key] = PendingSection()
	}
	r.Status = StatusPending
	r.SubmittedAt = &now
	return nil
}

// SectionUpdates carries section content for a draft save or a resubmission.
// A nil (or empty, for venueImages) field means "not present in the payload".
type SectionUpdates struct {
	VenueName            *string    `json:"venue_name,omitempty"`
	Phone                *string    `json:"phone,omitempty"`
	Location             *Location  `json:"location,omitempty"`
	ProfileImage         *ImageRef  `json:"profile_image,omitempty"`
	VenueImages          []ImageRef `json:"venue_images,omitempty"`
	CitizenshipFront     *ImageRef  `json:"citizenship_front,omitempty"`
	CitizenshipBack      *ImageRef  `json:"citizenship_back,omitempty"`
	BusinessRegistration *ImageRef  `json:"business_registration,omitempty"`
	PanCard              *ImageRef  `json:"pan_card,omitempty"`
}

// Keys lists, in canonical order, the sections present in the payload.
func (u *SectionUpdates) Keys() []SectionKey {
	var keys []SectionKey
	if u.VenueName != nil {
		keys = append(keys, SectionVenueName)
	}
	if u.Phone != nil {
		keys = append(keys, SectionPhone)
	}
	if u.Location != nil {
		keys = append(keys, SectionLocation)
	}
	if u.ProfileImage != nil {
		keys = append(keys, SectionProfileImage)
	}
	if len(u.VenueImages) > 0 {
		keys = append(keys, SectionVenueImages)
	}
	if u.CitizenshipFront != nil {
		keys = append(keys, SectionCitizenshipFront)
	}
	if u.CitizenshipBack != nil {
		keys = append(keys, SectionCitizenshipBack)
	}
	if u.BusinessRegistration != nil {
		keys = append(keys, SectionBusinessRegistration)
	}
	if u.PanCard != nil {
		keys = append(keys, SectionPanCard)
	}
	return keys
}

// ApplyContent writes one section's payload from the update into the
// registration. The caller is responsible for state checks.
func (r *Registration) ApplyContent(key SectionKey, u *SectionUpdates) error {
	switch key {
	case SectionVenueName:
		r.VenueName = *u.VenueName
	case SectionPhone:
		r.Phone = *u.Phone
	case SectionLocation:
		r.Location = *u.Location
	case SectionProfileImage:
		r.ProfileImage = u.ProfileImage
	case SectionVenueImages:
		r.VenueImages = u.VenueImages
	case SectionCitizenshipFront:
		r.CitizenshipFront = u.CitizenshipFront
	case SectionCitizenshipBack:
		r.CitizenshipBack = u.CitizenshipBack
	case SectionBusinessRegistration:
		r.BusinessRegistration = u.BusinessRegistration
	case SectionPanCard:
		r.PanCard = u.PanCard
	default:
		return ValidationError("unknown section key: %q", key)
	}
	return nil
}
