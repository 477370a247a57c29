package domain

import "time"

type Role string

const (
	RoleUser       Role = "user"
	RoleVenueOwner Role = "venue-owner"
	RoleAdmin      Role = "admin"
)

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	// DeviceToken, when present, enables the push channel for this user.
	DeviceToken *string   `json:"-"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}
