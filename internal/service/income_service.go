package service

import (
	"context"

	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/entities"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
	"fintrack-be/internal/repository"
	"fintrack-be/internal/specification"
)

// IncomeService defines the interface for income business logic
type IncomeService interface {
	GetIncome(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.IncomeDTO, error)
	GetIncomes(ctx context.Context, caller models.Caller, q models.TransactionQuery) (*models.PagedResponse[models.IncomeDTO], error)
	AddIncome(ctx context.Context, caller models.Caller, dto models.IncomeAddDTO) (*models.IncomeDTO, error)
	UpdateIncome(ctx context.Context, caller models.Caller, dto models.IncomeUpdateDTO) (*models.IncomeDTO, error)
	DeleteIncome(ctx context.Context, caller models.Caller, id uuid.UUID) error
}

type incomeService struct {
	repo *repository.Repository
}

// NewIncomeService creates a new income service
func NewIncomeService(repo *repository.Repository) IncomeService {
	return &incomeService{repo: repo}
}

func (s *incomeService) GetIncome(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.IncomeDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	dto, err := repository.Get(ctx, s.repo, specification.IncomeProjectionByOwner(id, caller.UserID))
	if err != nil {
		return nil, storeError(err, apperror.IncomeNotFound)
	}
	if err := checkOwner(dto.UserID, caller); err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *incomeService) GetIncomes(ctx context.Context, caller models.Caller, q models.TransactionQuery) (*models.PagedResponse[models.IncomeDTO], error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	page, err := repository.Page(ctx, s.repo, q.PaginationSearchQuery, specification.IncomePage(q, caller.UserID))
	if err != nil {
		return nil, storeError(err, nil)
	}
	return page, nil
}

func (s *incomeService) AddIncome(ctx context.Context, caller models.Caller, dto models.IncomeAddDTO) (*models.IncomeDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}
	amount, err := normalizeAmount(dto.Amount)
	if err != nil {
		return nil, err
	}

	var created *models.IncomeDTO
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkReferences(ctx, tx, &dto.CategoryID, &dto.PaymentMethodID); err != nil {
			return err
		}

		entity := &entities.Income{
			Amount:          amount,
			Description:     dto.Description,
			Date:            dto.Date.UTC(),
			UserID:          caller.UserID,
			CategoryID:      dto.CategoryID,
			PaymentMethodID: dto.PaymentMethodID,
		}
		if err := tx.Add(ctx, entity); err != nil {
			return writeError(err)
		}

		var err error
		created, err = repository.Get(ctx, tx, specification.IncomeProjectionByOwner(entity.ID, caller.UserID))
		return storeError(err, apperror.IncomeNotFound)
	})
	if err != nil {
		return nil, err
	}

	applog.For(ctx, applog.ComponentIncome).InfoContext(ctx, "Income added",
		applog.FieldEntityID, created.ID,
		applog.FieldUserID, caller.UserID)
	return created, nil
}

func (s *incomeService) UpdateIncome(ctx context.Context, caller models.Caller, dto models.IncomeUpdateDTO) (*models.IncomeDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if err := checkDescription(dto.Description); err != nil {
		return nil, err
	}

	var updated *models.IncomeDTO
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entity, err := repository.Get(ctx, tx, specification.IncomeByOwner(dto.ID, caller.UserID))
		if err != nil {
			return storeError(err, apperror.IncomeNotFound)
		}
		if err := checkOwner(entity.UserID, caller); err != nil {
			return err
		}
		if err := checkReferences(ctx, tx, dto.CategoryID, dto.PaymentMethodID); err != nil {
			return err
		}

		if dto.Amount != nil {
			amount, err := normalizeAmount(*dto.Amount)
			if err != nil {
				return err
			}
			entity.Amount = amount
		}
		entity.Description = dto.Description.Apply(entity.Description)
		if dto.Date != nil {
			entity.Date = dto.Date.UTC()
		}
		if dto.CategoryID != nil {
			entity.CategoryID = *dto.CategoryID
		}
		if dto.PaymentMethodID != nil {
			entity.PaymentMethodID = *dto.PaymentMethodID
		}

		if err := tx.Update(ctx, entity); err != nil {
			return writeError(err)
		}
		updated, err = repository.Get(ctx, tx, specification.IncomeProjectionByOwner(entity.ID, caller.UserID))
		return storeError(err, apperror.IncomeNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *incomeService) DeleteIncome(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if err := requireUser(caller); err != nil {
		return err
	}

	n, err := repository.Delete(ctx, s.repo, specification.IncomeByOwner(id, caller.UserID))
	if err != nil {
		return storeError(err, nil)
	}
	if n == 0 {
		return apperror.IncomeNotFound()
	}

	applog.For(ctx, applog.ComponentIncome).InfoContext(ctx, "Income deleted",
		applog.FieldEntityID, id,
		applog.FieldUserID, caller.UserID)
	return nil
}
