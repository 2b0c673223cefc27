package service

import (
	"context"

	"github.com/google/uuid"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/entities"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
	"fintrack-be/internal/notification"
	"fintrack-be/internal/repository"
	"fintrack-be/internal/specification"
)

// ExpenseService defines the interface for expense business logic.
// Every operation is scoped to the calling user.
type ExpenseService interface {
	GetExpense(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.ExpenseDTO, error)
	GetExpenses(ctx context.Context, caller models.Caller, q models.TransactionQuery) (*models.PagedResponse[models.ExpenseDTO], error)
	// AddExpense stores the expense, then sends the creation notification. When only the
	// notification fails, the stored expense is returned together with an
	// EmailNotificationFailed error.
	AddExpense(ctx context.Context, caller models.Caller, dto models.ExpenseAddDTO) (*models.ExpenseDTO, error)
	UpdateExpense(ctx context.Context, caller models.Caller, dto models.ExpenseUpdateDTO) (*models.ExpenseDTO, error)
	DeleteExpense(ctx context.Context, caller models.Caller, id uuid.UUID) error
}

// ExpenseNotifications configures the creation notification
type ExpenseNotifications struct {
	Notifier  notification.Notifier
	Formatter *notification.Formatter
	Recipient string
}

type expenseService struct {
	repo   *repository.Repository
	notify ExpenseNotifications
}

// NewExpenseService creates a new expense service. A nil Notifier disables notifications.
func NewExpenseService(repo *repository.Repository, notify ExpenseNotifications) ExpenseService {
	if notify.Formatter == nil {
		notify.Formatter = notification.NewFormatter("en", "$")
	}
	return &expenseService{repo: repo, notify: notify}
}

func (s *expenseService) GetExpense(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.ExpenseDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	dto, err := repository.Get(ctx, s.repo, specification.ExpenseProjectionByOwner(id, caller.UserID))
	if err != nil {
		return nil, storeError(err, apperror.ExpenseNotFound)
	}
	if err := checkOwner(dto.UserID, caller); err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *expenseService) GetExpenses(ctx context.Context, caller models.Caller, q models.TransactionQuery) (*models.PagedResponse[models.ExpenseDTO], error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	page, err := repository.Page(ctx, s.repo, q.PaginationSearchQuery, specification.ExpensePage(q, caller.UserID))
	if err != nil {
		return nil, storeError(err, nil)
	}
	return page, nil
}

func (s *expenseService) AddExpense(ctx context.Context, caller models.Caller, dto models.ExpenseAddDTO) (*models.ExpenseDTO, error) {
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

	var (
		created  *models.ExpenseDTO
		category *entities.Category
	)
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if category, err = loadCategory(ctx, tx, dto.CategoryID); err != nil {
			return err
		}
		if _, err = loadPaymentMethod(ctx, tx, dto.PaymentMethodID); err != nil {
			return err
		}

		entity := &entities.Expense{
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

		created, err = repository.Get(ctx, tx, specification.ExpenseProjectionByOwner(entity.ID, caller.UserID))
		return storeError(err, apperror.ExpenseNotFound)
	})
	if err != nil {
		return nil, err
	}

	logger := applog.For(ctx, applog.ComponentExpense)
	logger.InfoContext(ctx, "Expense added",
		applog.FieldEntityID, created.ID,
		applog.FieldUserID, caller.UserID,
		applog.FieldCategoryID, created.CategoryID)

	if err := s.sendCreated(ctx, created, category); err != nil {
		logger.ErrorContext(ctx, "Expense notification failed",
			applog.FieldEntityID, created.ID,
			applog.FieldOperation, applog.OpNotify,
			applog.FieldError, err)
		return created, apperror.EmailNotificationFailed(err)
	}
	return created, nil
}

func (s *expenseService) sendCreated(ctx context.Context, e *models.ExpenseDTO, category *entities.Category) error {
	if s.notify.Notifier == nil {
		return nil
	}
	msg := s.notify.Formatter.ExpenseCreated(s.notify.Recipient, e.Amount, category.Name, e.Date)
	return s.notify.Notifier.Send(ctx, msg)
}

func (s *expenseService) UpdateExpense(ctx context.Context, caller models.Caller, dto models.ExpenseUpdateDTO) (*models.ExpenseDTO, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if err := validateDTO(dto); err != nil {
		return nil, err
	}
	if err := checkDescription(dto.Description); err != nil {
		return nil, err
	}

	var updated *models.ExpenseDTO
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entity, err := repository.Get(ctx, tx, specification.ExpenseByOwner(dto.ID, caller.UserID))
		if err != nil {
			return storeError(err, apperror.ExpenseNotFound)
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
		updated, err = repository.Get(ctx, tx, specification.ExpenseProjectionByOwner(entity.ID, caller.UserID))
		return storeError(err, apperror.ExpenseNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if err := requireUser(caller); err != nil {
		return err
	}

	n, err := repository.Delete(ctx, s.repo, specification.ExpenseByOwner(id, caller.UserID))
	if err != nil {
		return storeError(err, nil)
	}
	if n == 0 {
		return apperror.ExpenseNotFound()
	}

	applog.For(ctx, applog.ComponentExpense).InfoContext(ctx, "Expense deleted",
		applog.FieldEntityID, id,
		applog.FieldUserID, caller.UserID)
	return nil
}
