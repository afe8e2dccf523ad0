package domain

import "time"

// User models a chat participant. Identity originates from Google OAuth:
// GoogleID is the provider subject and is unique once set. ID is assigned by
// the store and immutable after creation.
type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	GoogleID          string    `json:"-"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
