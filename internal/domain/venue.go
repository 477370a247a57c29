package domain

import "time"

// Venue is the publicly listable projection created when a registration is
// fully approved. Name, phone and images mirror the registration; the review
// workflow owns the visibility flag.
type Venue struct {
	ID             int32      `json:"id"`
	RegistrationID int32      `json:"registration_id"`
	OwnerID        int32      `json:"owner_id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Location       Location   `json:"location"`
	ProfileImage   *ImageRef  `json:"profile_image,omitempty"`
	Images         []ImageRef `json:"images,omitempty"`
	Capacity       int32      `json:"capacity"`
	Visible        bool       `json:"visible"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
}
