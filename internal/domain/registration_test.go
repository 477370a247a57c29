package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sectionStates = []SectionState{SectionNotSubmitted, SectionPending, SectionApproved, SectionRejected}

// Exhaustively checks every combination of the nine section states:
// APPROVED is derived iff all nine sections are APPROVED.
func TestDeriveOverallStatus_ApprovedIffAllApproved(t *testing.T) {
	total := 1
	for range SectionKeys {
		total *= len(sectionStates)
	}

	for combo := 0; combo < total; combo++ {
		sections := make(Sections, len(SectionKeys))
		n := combo
		allApproved := true
		for _, key := range SectionKeys {
			state := sectionStates[n%len(sectionStates)]
			n /= len(sectionStates)
			sections[key] = SectionStatus{Status: state}
			if state != SectionApproved {
				allApproved = false
			}
		}

		derived := DeriveOverallStatus(StatusUnderReview, sections)
		if allApproved {
			assert.Equal(t, StatusApproved, derived, "combo %d: all approved must derive APPROVED", combo)
		} else {
			assert.NotEqual(t, StatusApproved, derived, "combo %d: partial approval must never derive APPROVED", combo)
		}
	}
}

func TestDeriveOverallStatus_RejectionCascadesOnlyFromApproved(t *testing.T) {
	sections := make(Sections)
	for _, key := range SectionKeys {
		sections[key] = SectionStatus{Status: SectionApproved}
	}
	reason := "document expired"
	sections[SectionPanCard] = SectionStatus{Status: SectionRejected, RejectionReason: &reason}

	// Rejected section on an APPROVED registration pulls it down to REJECTED.
	assert.Equal(t, StatusRejected, DeriveOverallStatus(StatusApproved, sections))

	// The same section mix on a registration still in review stays put.
	assert.Equal(t, StatusUnderReview, DeriveOverallStatus(StatusUnderReview, sections))
	assert.Equal(t, StatusPending, DeriveOverallStatus(StatusPending, sections))
}

func TestDeriveOverallStatus_PartialApprovalIsNotTerminal(t *testing.T) {
	sections := make(Sections)
	for _, key := range SectionKeys {
		sections[key] = SectionStatus{Status: SectionPending}
	}
	for _, key := range []SectionKey{SectionVenueName, SectionPhone, SectionLocation, SectionProfileImage} {
		sections[key] = SectionStatus{Status: SectionApproved}
	}

	assert.Equal(t, StatusPending, DeriveOverallStatus(StatusPending, sections))
	assert.Equal(t, StatusUnderReview, DeriveOverallStatus(StatusUnderReview, sections))
}

func TestRecompute_StampsApprovedAtExactlyOnce(t *testing.T) {
	reg := completeRegistration(t)
	require.NoError(t, reg.Submit(time.Now()))
	reg.Status = StatusUnderReview

	reviewer := int32(7)
	for _, key := range SectionKeys {
		reg.Sections[key] = ApprovedSection(reviewer, time.Now())
	}

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	prev := reg.Recompute(first)
	assert.Equal(t, StatusUnderReview, prev)
	assert.Equal(t, StatusApproved, reg.Status)
	require.NotNil(t, reg.ApprovedAt)
	assert.Equal(t, first, *reg.ApprovedAt)

	// A second recompute with the same section states is a no-op.
	later := first.Add(time.Hour)
	prev = reg.Recompute(later)
	assert.Equal(t, StatusApproved, prev)
	assert.Equal(t, first, *reg.ApprovedAt)
}

func TestRecompute_RevokeSetsRejectedAt(t *testing.T) {
	reg := approvedRegistration(t)

	require.NoError(t, reg.SetSection(SectionCitizenshipFront, RejectedSection("blurry scan", 7, time.Now())))
	now := time.Now()
	prev := reg.Recompute(now)

	assert.Equal(t, StatusApproved, prev)
	assert.Equal(t, StatusRejected, reg.Status)
	require.NotNil(t, reg.RejectedAt)

	// The other eight sections keep their review records.
	for _, key := range SectionKeys {
		if key == SectionCitizenshipFront {
			continue
		}
		assert.Equal(t, SectionApproved, reg.Sections[key].Status)
	}
}

func TestSubmit_RequiresDraftAndCompleteContent(t *testing.T) {
	reg := NewRegistration(42)
	err := reg.Submit(time.Now())
	assert.Equal(t, KindValidation, KindOf(err))

	reg = completeRegistration(t)
	require.NoError(t, reg.Submit(time.Now()))
	assert.Equal(t, StatusPending, reg.Status)
	assert.NotNil(t, reg.SubmittedAt)
	for _, key := range SectionKeys {
		assert.Equal(t, SectionPending, reg.Sections[key].Status)
	}

	err = reg.Submit(time.Now())
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestSectionStatus_ReasonPresentIffRejected(t *testing.T) {
	rejected := RejectedSection("illegible", 3, time.Now())
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "illegible", *rejected.RejectionReason)

	approved := ApprovedSection(3, time.Now())
	assert.Nil(t, approved.RejectionReason)

	pending := PendingSection()
	assert.Nil(t, pending.RejectionReason)
	assert.Nil(t, pending.ReviewedBy)
}

func TestParseSectionKey(t *testing.T) {
	key, err := ParseSectionKey("venueImages")
	assert.NoError(t, err)
	assert.Equal(t, SectionVenueImages, key)

	_, err = ParseSectionKey("bankAccount")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSectionUpdates_Keys(t *testing.T) {
	name := "Lakeside Banquet"
	u := &SectionUpdates{
		VenueName: &name,
		PanCard:   &ImageRef{URL: "https://files.test/pan.jpg", PublicID: "pan-1"},
	}
	assert.Equal(t, []SectionKey{SectionVenueName, SectionPanCard}, u.Keys())

	empty := &SectionUpdates{}
	assert.Empty(t, empty.Keys())
}

func completeRegistration(t *testing.T) *Registration {
	t.Helper()
	reg := NewRegistration(42)
	reg.VenueName = "Lakeside Banquet"
	reg.Phone = "980-555-0101"
	reg.Location = Location{Address: "12 Lake Rd", City: "Pokhara", Province: "Gandaki"}
	reg.ProfileImage = &ImageRef{URL: "https://files.test/p.jpg", PublicID: "p-1"}
	reg.VenueImages = []ImageRef{{URL: "https://files.test/v1.jpg", PublicID: "v-1"}}
	reg.CitizenshipFront = &ImageRef{URL: "https://files.test/cf.jpg", PublicID: "cf-1"}
	reg.CitizenshipBack = &ImageRef{URL: "https://files.test/cb.jpg", PublicID: "cb-1"}
	reg.BusinessRegistration = &ImageRef{URL: "https://files.test/br.jpg", PublicID: "br-1"}
	reg.PanCard = &ImageRef{URL: "https://files.test/pan.jpg", PublicID: "pan-1"}
	return reg
}

func approvedRegistration(t *testing.T) *Registration {
	t.Helper()
	reg := completeRegistration(t)
	require.NoError(t, reg.Submit(time.Now()))
	for _, key := range SectionKeys {
		reg.Sections[key] = ApprovedSection(7, time.Now())
	}
	reg.Recompute(time.Now())
	require.Equal(t, StatusApproved, reg.Status)
	return reg
}
