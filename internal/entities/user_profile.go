package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile holds the optional personal details of a user; at most one per user
type UserProfile struct {
	Base
	Bio      string     `gorm:"type:text;not null;default:''"`
	Birthday *time.Time
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

func (UserProfile) TableName() string { return "user_profiles" }
