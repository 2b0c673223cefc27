package service

import (
	"context"
	"errors"
	"fmt"
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

// CategoryService defines the interface for category business logic.
// Single-item reads and every mutation are restricted to administrators.
type CategoryService interface {
	GetCategory(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.CategoryDTO, error)
	GetCategories(ctx context.Context, caller models.Caller, q models.PaginationSearchQuery) (*models.PagedResponse[models.CategoryDTO], error)
	AddCategory(ctx context.Context, caller models.Caller, dto models.CategoryAddDTO) (*models.CategoryDTO, error)
	UpdateCategory(ctx context.Context, caller models.Caller, dto models.CategoryUpdateDTO) (*models.CategoryDTO, error)
	DeleteCategory(ctx context.Context, caller models.Caller, id uuid.UUID) error
}

type categoryService struct {
	repo     *repository.Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCategoryService creates a new category service. cacheClient may be nil.
func NewCategoryService(repo *repository.Repository, cacheClient cache.Cache, cacheTTL time.Duration) CategoryService {
	return &categoryService{repo: repo, cache: cacheClient, cacheTTL: cacheTTL}
}

func (s *categoryService) GetCategory(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.CategoryDTO, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	key := cache.CategoryKey(id)
	var cached models.CategoryDTO
	if readCache(ctx, s.cache, key, &cached) {
		return &cached, nil
	}

	dto, err := repository.Get(ctx, s.repo, specification.CategoryProjectionByID(id))
	if err != nil {
		return nil, storeError(err, apperror.CategoryNotFound)
	}
	writeCache(ctx, s.cache, key, dto, s.cacheTTL)
	return dto, nil
}

func (s *categoryService) GetCategories(ctx context.Context, caller models.Caller, q models.PaginationSearchQuery) (*models.PagedResponse[models.CategoryDTO], error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	page, err := repository.Page(ctx, s.repo, q, specification.CategoryPage(q.Search))
	if err != nil {
		return nil, storeError(err, nil)
	}
	return page, nil
}

func (s *categoryService) AddCategory(ctx context.Context, caller models.Caller, dto models.CategoryAddDTO) (*models.CategoryDTO, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}

	entity := &entities.Category{Name: strings.TrimSpace(dto.Name), Type: string(dto.Type)}
	if err := s.repo.Add(ctx, entity); err != nil {
		return nil, writeError(err)
	}

	applog.For(ctx, applog.ComponentCategory).InfoContext(ctx, "Category added",
		applog.FieldEntityID, entity.ID,
		applog.FieldOperation, applog.OpCreate)
	return categoryDTO(entity), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, caller models.Caller, dto models.CategoryUpdateDTO) (*models.CategoryDTO, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}

	var updated *entities.Category
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entity, err := repository.Get(ctx, tx, specification.CategoryByID(dto.ID))
		if err != nil {
			return storeError(err, apperror.CategoryNotFound)
		}
		if dto.Name != nil {
			entity.Name = strings.TrimSpace(*dto.Name)
		}
		if dto.Type != nil {
			entity.Type = string(*dto.Type)
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

	dropCache(ctx, s.cache, cache.CategoryKey(dto.ID))
	return categoryDTO(updated), nil
}

// DeleteCategory refuses to remove a category still referenced by an expense or income
func (s *categoryService) DeleteCategory(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := repository.Get(ctx, tx, specification.CategoryByID(id)); err != nil {
			return storeError(err, apperror.CategoryNotFound)
		}
		if err := ensureUnreferenced(ctx, tx, "Category",
			specification.ExpensesReferencingCategory(id),
			specification.IncomesReferencingCategory(id)); err != nil {
			return err
		}
		return deleteReference(ctx, tx, specification.CategoryByID(id), "Category", apperror.CategoryNotFound)
	})
	if err != nil {
		return err
	}

	dropCache(ctx, s.cache, cache.CategoryKey(id))
	applog.For(ctx, applog.ComponentCategory).InfoContext(ctx, "Category deleted",
		applog.FieldEntityID, id,
		applog.FieldOperation, applog.OpDelete)
	return nil
}

func categoryDTO(e *entities.Category) *models.CategoryDTO {
	return &models.CategoryDTO{
		ID:        e.ID,
		Name:      e.Name,
		Type:      models.CategoryType(e.Type),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func inUse(name string, refs int64) *apperror.Error {
	return apperror.Conflict(apperror.CodeEntityInUse,
		fmt.Sprintf("%s is still used by %d expense or income records!", name, refs))
}

// ensureUnreferenced counts the expenses and incomes pointing at a reference row
func ensureUnreferenced(ctx context.Context, tx *repository.Repository, name string,
	expenses *specification.Spec[entities.Expense], incomes *specification.Spec[entities.Income]) error {
	nExpenses, err := repository.Count(ctx, tx, expenses)
	if err != nil {
		return storeError(err, nil)
	}
	nIncomes, err := repository.Count(ctx, tx, incomes)
	if err != nil {
		return storeError(err, nil)
	}
	if refs := nExpenses + nIncomes; refs > 0 {
		return inUse(name, refs)
	}
	return nil
}

// deleteReference removes one row; the store's RESTRICT constraint backs up the count check
func deleteReference[T any](ctx context.Context, tx *repository.Repository, spec *specification.Spec[T], name string, notFound func() *apperror.Error) error {
	n, err := repository.Delete(ctx, tx, spec)
	if err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return apperror.Conflict(apperror.CodeEntityInUse, name+" is still in use!")
		}
		return storeError(err, nil)
	}
	if n == 0 {
		return notFound()
	}
	return nil
}

func readCache(ctx context.Context, c cache.Cache, key string, dest any) bool {
	if c == nil {
		return false
	}
	err := c.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		applog.For(ctx, applog.ComponentCache).WarnContext(ctx, "Cache read failed", "key", key, applog.FieldError, err)
	}
	return false
}

func writeCache(ctx context.Context, c cache.Cache, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.SetJSON(ctx, key, value, ttl); err != nil {
		applog.For(ctx, applog.ComponentCache).WarnContext(ctx, "Cache write failed", "key", key, applog.FieldError, err)
	}
}

func dropCache(ctx context.Context, c cache.Cache, key string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, key); err != nil {
		applog.For(ctx, applog.ComponentCache).WarnContext(ctx, "Cache invalidation failed", "key", key, applog.FieldError, err)
	}
}
