package service

import (
	"errors"

	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/models"
	"fintrack-be/internal/repository"
)

func requireUser(caller models.Caller) error {
	if !caller.IsAuthenticated() {
		return apperror.Unauthorized("Authentication is required!")
	}
	return nil
}

func requireAdmin(caller models.Caller) error {
	if err := requireUser(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperror.AccessDenied()
	}
	return nil
}

// checkOwner guards rows already fetched through an owner-scoped query
func checkOwner(owner uuid.UUID, caller models.Caller) error {
	if owner != caller.UserID {
		return apperror.AccessDenied()
	}
	return nil
}

// storeError maps repository failures onto the envelope. notFound may be nil
// when a missing row cannot happen.
func storeError(err error, notFound func() *apperror.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrInvalidPage) {
		return apperror.InvalidPagination()
	}
	return apperror.FromStore(err, notFound)
}
