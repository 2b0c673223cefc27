package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/entities"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
	"fintrack-be/internal/repository"
	"fintrack-be/internal/specification"
)

// UserProfileService defines the interface for profile business logic.
// A user owns at most one profile.
type UserProfileService interface {
	GetProfile(ctx context.Context, caller models.Caller) (*models.UserProfileDTO, error)
	AddProfile(ctx context.Context, caller models.Caller, dto models.UserProfileAddDTO) (*models.UserProfileDTO, error)
	UpdateProfile(ctx context.Context, caller models.Caller, dto models.UserProfileUpdateDTO) (*models.UserProfileDTO, error)
	DeleteProfile(ctx context.Context, caller models.Caller, id uuid.UUID) error
}

type userProfileService struct {
	repo *repository.Repository
}

// NewUserProfileService creates a new user profile service
func NewUserProfileService(repo *repository.Repository) UserProfileService {
	return &userProfileService{repo: repo}
}

func profileNotFound() *apperror.Error {
	return apperror.New(apperror.StatusNotFound, apperror.CodeEntityNotFound, "Profile not found!")
}

func profileExists() *apperror.Error {
	return apperror.Conflict(apperror.CodeProfileAlreadyExists, "Profile already exists!")
}

func (s *userProfileService) GetProfile(ctx context.Context, caller models.Caller) (*models.UserProfileDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	dto, err := repository.Get(ctx, s.repo, specification.UserProfileProjection(caller.UserID))
	if err != nil {
		return nil, storeError(err, profileNotFound)
	}
	return dto, nil
}

// AddProfile checks for an existing profile and inserts inside one transaction; the unique
// index on user_id rejects a concurrent insert that passed the check.
func (s *userProfileService) AddProfile(ctx context.Context, caller models.Caller, dto models.UserProfileAddDTO) (*models.UserProfileDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}

	entity := &entities.UserProfile{
		Bio:      dto.Bio,
		Birthday: utcDate(dto.Birthday),
		UserID:   caller.UserID,
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		exists, err := repository.Exists(ctx, tx, specification.UserProfileByUser(caller.UserID))
		if err != nil {
			return storeError(err, nil)
		}
		if exists {
			return profileExists()
		}
		if err := tx.Add(ctx, entity); err != nil {
			if apperror.IsUniqueViolation(err) {
				return profileExists()
			}
			return storeError(err, nil)
		}
		return nil
	})
	if err != nil {
		if apperror.HasCode(err, apperror.CodeProfileAlreadyExists) {
			applog.For(ctx, applog.ComponentProfile).InfoContext(ctx, "Duplicate profile rejected",
				applog.FieldUserID, caller.UserID)
		}
		return nil, err
	}
	return profileDTO(entity), nil
}

func (s *userProfileService) UpdateProfile(ctx context.Context, caller models.Caller, dto models.UserProfileUpdateDTO) (*models.UserProfileDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}

	var updated *entities.UserProfile
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entity, err := repository.Get(ctx, tx, specification.UserProfileByOwner(dto.ID, caller.UserID))
		if err != nil {
			return storeError(err, profileNotFound)
		}
		if err := checkOwner(entity.UserID, caller); err != nil {
			return err
		}
		if dto.Bio != nil {
			entity.Bio = *dto.Bio
		}
		entity.Birthday = utcDate(dto.Birthday.Apply(entity.Birthday))
		if err := tx.Update(ctx, entity); err != nil {
			return storeError(err, nil)
		}
		updated = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profileDTO(updated), nil
}

func (s *userProfileService) DeleteProfile(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if err := requireUser(caller); err != nil {
		return err
	}
	n, err := repository.Delete(ctx, s.repo, specification.UserProfileByOwner(id, caller.UserID))
	if err != nil {
		return storeError(err, nil)
	}
	if n == 0 {
		return profileNotFound()
	}
	return nil
}

func profileDTO(e *entities.UserProfile) *models.UserProfileDTO {
	return &models.UserProfileDTO{
		ID:        e.ID,
		UserID:    e.UserID,
		Bio:       e.Bio,
		Birthday:  e.Birthday,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
