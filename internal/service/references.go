package service

import (
	"context"

	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/entities"
	"fintrack-be/internal/repository"
	"fintrack-be/internal/specification"
)

func missingCategory() *apperror.Error {
	return apperror.InvalidReference(apperror.CodeCategoryNotFound, "Category not found!")
}

func missingPaymentMethod() *apperror.Error {
	return apperror.InvalidReference(apperror.CodePaymentMethodNotFound, "Payment method not found!")
}

// loadCategory reads through the store, never the cache, so the check sees the transaction's view
func loadCategory(ctx context.Context, r *repository.Repository, id uuid.UUID) (*entities.Category, error) {
	c, err := repository.Get(ctx, r, specification.CategoryByID(id))
	if err != nil {
		return nil, storeError(err, missingCategory)
	}
	return c, nil
}

func loadPaymentMethod(ctx context.Context, r *repository.Repository, id uuid.UUID) (*entities.PaymentMethod, error) {
	p, err := repository.Get(ctx, r, specification.PaymentMethodByID(id))
	if err != nil {
		return nil, storeError(err, missingPaymentMethod)
	}
	return p, nil
}

// checkReferences confirms that the non-nil references exist
func checkReferences(ctx context.Context, r *repository.Repository, categoryID, paymentMethodID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := loadCategory(ctx, r, *categoryID); err != nil {
			return err
		}
	}
	if paymentMethodID != nil {
		if _, err := loadPaymentMethod(ctx, r, *paymentMethodID); err != nil {
			return err
		}
	}
	return nil
}

// writeError maps a failed insert or update. A foreign-key failure here means a reference
// vanished after it was checked.
func writeError(err error) error {
	if apperror.IsForeignKeyViolation(err) {
		return apperror.InvalidRequest("A referenced category or payment method no longer exists!")
	}
	return storeError(err, nil)
}
