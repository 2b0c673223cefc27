package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfileDTO is the projection of a user's profile
type UserProfileDTO struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Bio       string     `json:"bio"`
	Birthday  *time.Time `json:"birthday"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UserProfileAddDTO represents the request body for creating the caller's profile
type UserProfileAddDTO struct {
	Bio      string     `json:"bio" validate:"max=2000"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// UserProfileUpdateDTO represents a partial profile update. A null birthday clears it.
type UserProfileUpdateDTO struct {
	ID       uuid.UUID           `json:"id"`
	Bio      *string             `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Birthday Optional[time.Time] `json:"birthday"`
}
