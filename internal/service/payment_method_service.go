package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/cache"
	"fintrack-be/internal/entities"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
	"fintrack-be/internal/repository"
	"fintrack-be/internal/specification"
)

// PaymentMethodService defines the interface for payment method business logic
type PaymentMethodService interface {
	GetPaymentMethod(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.PaymentMethodDTO, error)
	GetPaymentMethods(ctx context.Context, caller models.Caller, q models.PaginationSearchQuery) (*models.PagedResponse[models.PaymentMethodDTO], error)
	AddPaymentMethod(ctx context.Context, caller models.Caller, dto models.PaymentMethodAddDTO) (*models.PaymentMethodDTO, error)
	UpdatePaymentMethod(ctx context.Context, caller models.Caller, dto models.PaymentMethodUpdateDTO) (*models.PaymentMethodDTO, error)
	DeletePaymentMethod(ctx context.Context, caller models.Caller, id uuid.UUID) error
}

type paymentMethodService struct {
	repo     *repository.Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPaymentMethodService creates a new payment method service. cacheClient may be nil.
func NewPaymentMethodService(repo *repository.Repository, cacheClient cache.Cache, cacheTTL time.Duration) PaymentMethodService {
	return &paymentMethodService{repo: repo, cache: cacheClient, cacheTTL: cacheTTL}
}

func (s *paymentMethodService) GetPaymentMethod(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.PaymentMethodDTO, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	key := cache.PaymentMethodKey(id)
	var cached models.PaymentMethodDTO
	if readCache(ctx, s.cache, key, &cached) {
		return &cached, nil
	}

	dto, err := repository.Get(ctx, s.repo, specification.PaymentMethodProjectionByID(id))
	if err != nil {
		return nil, storeError(err, apperror.PaymentMethodNotFound)
	}
	writeCache(ctx, s.cache, key, dto, s.cacheTTL)
	return dto, nil
}

func (s *paymentMethodService) GetPaymentMethods(ctx context.Context, caller models.Caller, q models.PaginationSearchQuery) (*models.PagedResponse[models.PaymentMethodDTO], error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	page, err := repository.Page(ctx, s.repo, q, specification.PaymentMethodPage(q.Search))
	if err != nil {
		return nil, storeError(err, nil)
	}
	return page, nil
}

func (s *paymentMethodService) AddPaymentMethod(ctx context.Context, caller models.Caller, dto models.PaymentMethodAddDTO) (*models.PaymentMethodDTO, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}

	entity := &entities.PaymentMethod{Name: strings.TrimSpace(dto.Name)}
	if err := s.repo.Add(ctx, entity); err != nil {
		return nil, writeError(err)
	}

	applog.For(ctx, applog.ComponentPayment).InfoContext(ctx, "Payment method added",
		applog.FieldEntityID, entity.ID,
		applog.FieldOperation, applog.OpCreate)
	return paymentMethodDTO(entity), nil
}

func (s *paymentMethodService) UpdatePaymentMethod(ctx context.Context, caller models.Caller, dto models.PaymentMethodUpdateDTO) (*models.PaymentMethodDTO, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}

	var updated *entities.PaymentMethod
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entity, err := repository.Get(ctx, tx, specification.PaymentMethodByID(dto.ID))
		if err != nil {
			return storeError(err, apperror.PaymentMethodNotFound)
		}
		if dto.Name != nil {
			entity.Name = strings.TrimSpace(*dto.Name)
		}
		if err := tx.Update(ctx, entity); err != nil {
			return writeError(err)
		}
		updated = entity
		return nil
	})
	if err != nil {
		return nil, err
	}

	dropCache(ctx, s.cache, cache.PaymentMethodKey(dto.ID))
	return paymentMethodDTO(updated), nil
}

// DeletePaymentMethod refuses to remove a payment method still referenced by an expense or income
func (s *paymentMethodService) DeletePaymentMethod(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := repository.Get(ctx, tx, specification.PaymentMethodByID(id)); err != nil {
			return storeError(err, apperror.PaymentMethodNotFound)
		}
		if err := ensureUnreferenced(ctx, tx, "Payment method",
			specification.ExpensesReferencingPaymentMethod(id),
			specification.IncomesReferencingPaymentMethod(id)); err != nil {
			return err
		}
		return deleteReference(ctx, tx, specification.PaymentMethodByID(id), "Payment method", apperror.PaymentMethodNotFound)
	})
	if err != nil {
		return err
	}

	dropCache(ctx, s.cache, cache.PaymentMethodKey(id))
	applog.For(ctx, applog.ComponentPayment).InfoContext(ctx, "Payment method deleted",
		applog.FieldEntityID, id,
		applog.FieldOperation, applog.OpDelete)
	return nil
}

func paymentMethodDTO(e *entities.PaymentMethod) *models.PaymentMethodDTO {
	return &models.PaymentMethodDTO{
		ID:        e.ID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
