package specification

import (
	"github.com/google/uuid"

	"fintrack-be/internal/entities"
	"fintrack-be/internal/models"
)

// UserProfileByUser selects the profile entity of a user.
func UserProfileByUser(userID uuid.UUID) *Spec[entities.UserProfile] {
	return New[entities.UserProfile](&entities.UserProfile{}, "user_profiles").
		Where("user_profiles.user_id = ?", userID)
}

// UserProfileByOwner selects a profile entity by id, only if it belongs to userID.
func UserProfileByOwner(id, userID uuid.UUID) *Spec[entities.UserProfile] {
	return UserProfileByUser(userID).Where("user_profiles.id = ?", id)
}

// UserProfileProjection selects the profile of a user as a DTO.
func UserProfileProjection(userID uuid.UUID) *Spec[models.UserProfileDTO] {
	return New[models.UserProfileDTO](&entities.UserProfile{}, "user_profiles").
		Select(
			"user_profiles.id AS id",
			"user_profiles.user_id AS user_id",
			"user_profiles.bio AS bio",
			"user_profiles.birthday AS birthday",
			"user_profiles.created_at AS created_at",
			"user_profiles.updated_at AS updated_at",
		).
		Where("user_profiles.user_id = ?", userID)
}

func feedbackProjection() *Spec[models.FeedbackDTO] {
	return New[models.FeedbackDTO](&entities.Feedback{}, "feedbacks").
		Select(
			"feedbacks.id AS id",
			"feedbacks.user_id AS user_id",
			"feedbacks.category AS category",
			"feedbacks.experience_rating AS experience_rating",
			"feedbacks.would_recommend AS would_recommend",
			"feedbacks.comment AS comment",
			"feedbacks.created_at AS created_at",
		)
}

// FeedbackProjectionByID selects one submission as a DTO.
func FeedbackProjectionByID(id uuid.UUID) *Spec[models.FeedbackDTO] {
	return feedbackProjection().Where("feedbacks.id = ?", id)
}

// FeedbackPage lists submissions whose category or comment matches search, newest first.
func FeedbackPage(search string) *Spec[models.FeedbackDTO] {
	return feedbackProjection().
		Search(search, "feedbacks.category", "feedbacks.comment").
		OrderByRecency()
}
