package entities

import "github.com/google/uuid"

// Feedback is an immutable submission; UserID is nil for anonymous visitors
type Feedback struct {
	Base
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	Category         string     `gorm:"size:50;not null"`
	ExperienceRating string     `gorm:"size:20;not null"`
	WouldRecommend   bool       `gorm:"not null"`
	Comment          string     `gorm:"size:1000;not null;default:''"`
}

func (Feedback) TableName() string { return "feedbacks" }
