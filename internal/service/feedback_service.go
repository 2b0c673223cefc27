package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/entities"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
	"fintrack-be/internal/repository"
	"fintrack-be/internal/specification"
)

// FeedbackService defines the interface for feedback business logic.
// Anyone may submit; only administrators may read. Submissions are immutable.
type FeedbackService interface {
	GetFeedback(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.FeedbackDTO, error)
	GetFeedbacks(ctx context.Context, caller models.Caller, q models.PaginationSearchQuery) (*models.PagedResponse[models.FeedbackDTO], error)
	AddFeedback(ctx context.Context, caller models.Caller, dto models.FeedbackAddDTO) (*models.FeedbackDTO, error)
}

type feedbackService struct {
	repo *repository.Repository
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(repo *repository.Repository) FeedbackService {
	return &feedbackService{repo: repo}
}

func (s *feedbackService) GetFeedback(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.FeedbackDTO, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	dto, err := repository.Get(ctx, s.repo, specification.FeedbackProjectionByID(id))
	if err != nil {
		return nil, storeError(err, apperror.EntityNotFound)
	}
	return dto, nil
}

func (s *feedbackService) GetFeedbacks(ctx context.Context, caller models.Caller, q models.PaginationSearchQuery) (*models.PagedResponse[models.FeedbackDTO], error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	page, err := repository.Page(ctx, s.repo, q, specification.FeedbackPage(q.Search))
	if err != nil {
		return nil, storeError(err, nil)
	}
	return page, nil
}

// AddFeedback records a submission. An anonymous caller produces a row without a user.
func (s *feedbackService) AddFeedback(ctx context.Context, caller models.Caller, dto models.FeedbackAddDTO) (*models.FeedbackDTO, error) {
	if err := validateDTO(dto); err != nil {
		return nil, err
	}

	entity := &entities.Feedback{
		UserID:           caller.OptionalUserID(),
		Category:         strings.TrimSpace(dto.Category),
		ExperienceRating: strings.TrimSpace(dto.ExperienceRating),
		WouldRecommend:   dto.WouldRecommend,
		Comment:          dto.Comment,
	}
	if err := s.repo.Add(ctx, entity); err != nil {
		return nil, storeError(err, nil)
	}

	applog.For(ctx, applog.ComponentFeedback).InfoContext(ctx, "Feedback received",
		applog.FieldEntityID, entity.ID,
		"anonymous", entity.UserID == nil)

	return &models.FeedbackDTO{
		ID:               entity.ID,
		UserID:           entity.UserID,
		Category:         entity.Category,
		ExperienceRating: entity.ExperienceRating,
		WouldRecommend:   entity.WouldRecommend,
		Comment:          entity.Comment,
		CreatedAt:        entity.CreatedAt,
	}, nil
}
