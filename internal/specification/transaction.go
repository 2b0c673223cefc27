package specification

import (
	"github.com/google/uuid"

	"fintrack-be/internal/entities"
	"fintrack-be/internal/models"
)

// projectedTransaction selects the shared expense/income columns plus the joined
// category and payment method names.
func projectedTransaction[T any](model any, table string) *Spec[T] {
	return New[T](model, table).
		Join("JOIN categories ON categories.id = "+table+".category_id").
		Join("JOIN payment_methods ON payment_methods.id = "+table+".payment_method_id").
		Select(
			table+".id AS id",
			table+".user_id AS user_id",
			table+".amount AS amount",
			table+".description AS description",
			table+".date AS date",
			table+".category_id AS category_id",
			"categories.name AS category_name",
			table+".payment_method_id AS payment_method_id",
			"payment_methods.name AS payment_method_name",
			table+".created_at AS created_at",
			table+".updated_at AS updated_at",
		)
}

// ownedTransactionFilters narrows a listing to one owner and the optional query filters.
func ownedTransactionFilters[T any](s *Spec[T], q models.TransactionQuery, userID uuid.UUID) *Spec[T] {
	table := s.Table()
	s.Where(table+".user_id = ?", userID)
	if q.From != nil {
		s.Where(table+".date >= ?", *q.From)
	}
	if q.To != nil {
		s.Where(table+".date <= ?", *q.To)
	}
	if q.CategoryID != nil {
		s.Where(table+".category_id = ?", *q.CategoryID)
	}
	return s.Search(q.Search, table+".description").OrderByRecency()
}

// ExpenseByOwner selects one expense entity by id and owner. A non-owner gets no row.
func ExpenseByOwner(id, userID uuid.UUID) *Spec[entities.Expense] {
	return New[entities.Expense](&entities.Expense{}, "expenses").
		Where("expenses.id = ?", id).
		Where("expenses.user_id = ?", userID)
}

// ExpenseProjectionByOwner selects one expense DTO by id and owner.
func ExpenseProjectionByOwner(id, userID uuid.UUID) *Spec[models.ExpenseDTO] {
	return projectedTransaction[models.ExpenseDTO](&entities.Expense{}, "expenses").
		Where("expenses.id = ?", id).
		Where("expenses.user_id = ?", userID)
}

// ExpensePage lists the owner's expenses, newest first.
func ExpensePage(q models.TransactionQuery, userID uuid.UUID) *Spec[models.ExpenseDTO] {
	return ownedTransactionFilters(projectedTransaction[models.ExpenseDTO](&entities.Expense{}, "expenses"), q, userID)
}

// IncomeByOwner selects one income entity by id and owner.
func IncomeByOwner(id, userID uuid.UUID) *Spec[entities.Income] {
	return New[entities.Income](&entities.Income{}, "incomes").
		Where("incomes.id = ?", id).
		Where("incomes.user_id = ?", userID)
}

// IncomeProjectionByOwner selects one income DTO by id and owner.
func IncomeProjectionByOwner(id, userID uuid.UUID) *Spec[models.IncomeDTO] {
	return projectedTransaction[models.IncomeDTO](&entities.Income{}, "incomes").
		Where("incomes.id = ?", id).
		Where("incomes.user_id = ?", userID)
}

// IncomePage lists the owner's incomes, newest first.
func IncomePage(q models.TransactionQuery, userID uuid.UUID) *Spec[models.IncomeDTO] {
	return ownedTransactionFilters(projectedTransaction[models.IncomeDTO](&entities.Income{}, "incomes"), q, userID)
}
