package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackDTO is the projection of a feedback submission; UserID is nil for anonymous ones
type FeedbackDTO struct {
	ID               uuid.UUID  `json:"id"`
	UserID           *uuid.UUID `json:"userId"`
	Category         string     `json:"category"`
	ExperienceRating string     `json:"experienceRating"`
	WouldRecommend   bool       `json:"wouldRecommend"`
	Comment          string     `json:"comment"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FeedbackAddDTO represents the request body for submitting feedback
type FeedbackAddDTO struct {
	Category         string `json:"category" binding:"required,max=50" validate:"required,notblank,max=50"`
	ExperienceRating string `json:"experienceRating" binding:"required,max=20" validate:"required,notblank,max=20"`
	WouldRecommend   bool   `json:"wouldRecommend"`
	Comment          string `json:"comment" binding:"max=1000" validate:"max=1000"`
}
