package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack-be/internal/models"
	"fintrack-be/internal/specification"
)

// ErrInvalidPage is returned for a page below 1 or a non-positive page size.
var ErrInvalidPage = fmt.Errorf("page must be at least 1 and pageSize between 1 and %d", models.MaxPageSize)

// Repository executes specifications and entity writes against one gorm handle.
// Inside Transaction the handle is the transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle, scoped to ctx.
func (r *Repository) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Transaction runs fn with a repository bound to a single transaction.
// An error from fn rolls the transaction back.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Get returns the single row matching spec, or gorm.ErrRecordNotFound.
func Get[T any](ctx context.Context, r *Repository, spec *specification.Spec[T]) (*T, error) {
	var rows []T
	if err := spec.Query(r.DB(ctx)).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get from %s: %w", spec.Table(), err)
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// Count returns how many rows match spec's filters.
func Count[T any](ctx context.Context, r *Repository, spec *specification.Spec[T]) (int64, error) {
	var total int64
	if err := spec.Filtered(r.DB(ctx)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", spec.Table(), err)
	}
	return total, nil
}

// Exists reports whether any row matches spec's filters.
func Exists[T any](ctx context.Context, r *Repository, spec *specification.Spec[T]) (bool, error) {
	total, err := Count(ctx, r, spec)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// Page returns one window of spec's rows plus the total count of rows matching its filters.
// Pages are 1-based and hold at most models.MaxPageSize rows; other paging arguments are
// rejected with ErrInvalidPage. A window starting past the last row is empty.
func Page[T any](ctx context.Context, r *Repository, q models.PaginationSearchQuery, spec *specification.Spec[T]) (*models.PagedResponse[T], error) {
	if q.Page < 1 || q.PageSize < 1 || q.PageSize > models.MaxPageSize {
		return nil, ErrInvalidPage
	}

	total, err := Count(ctx, r, spec)
	if err != nil {
		return nil, err
	}

	rows := []T{}
	if offset, ok := pageOffset(q, total); ok {
		rows = make([]T, 0, min(int64(q.PageSize), total-offset))
		err = spec.Query(r.DB(ctx)).Offset(int(offset)).Limit(q.PageSize).Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to page %s: %w", spec.Table(), err)
		}
	}

	return &models.PagedResponse[T]{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalCount: total,
		Data:       rows,
	}, nil
}

// pageOffset returns the first row of q's window, or false when the window starts at or past total.
func pageOffset(q models.PaginationSearchQuery, total int64) (int64, bool) {
	skipped := int64(q.Page - 1)
	if skipped >= (total+int64(q.PageSize)-1)/int64(q.PageSize) {
		return 0, false
	}
	return skipped * int64(q.PageSize), true
}

// Add inserts entity. Associations are never written through the entity.
func (r *Repository) Add(ctx context.Context, entity any) error {
	if err := r.DB(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to add: %w", err)
	}
	return nil
}

// Update saves every column of entity and refreshes its updated-at time.
func (r *Repository) Update(ctx context.Context, entity any) error {
	if err := r.DB(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	return nil
}

// Delete removes rows matching spec and returns how many went away.
func Delete[T any](ctx context.Context, r *Repository, spec *specification.Spec[T]) (int64, error) {
	var model T
	q := r.DB(ctx)
	res := spec.Filtered(q).Delete(&model)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", spec.Table(), res.Error)
	}
	return res.RowsAffected, nil
}
