package specification

import (
	"github.com/google/uuid"

	"fintrack-be/internal/entities"
	"fintrack-be/internal/models"
)

// CategoryByID selects one category entity.
func CategoryByID(id uuid.UUID) *Spec[entities.Category] {
	return New[entities.Category](&entities.Category{}, "categories").
		Where("categories.id = ?", id)
}

func categoryProjection() *Spec[models.CategoryDTO] {
	return New[models.CategoryDTO](&entities.Category{}, "categories").
		Select(
			"categories.id AS id",
			"categories.name AS name",
			"categories.type AS type",
			"categories.created_at AS created_at",
			"categories.updated_at AS updated_at",
		)
}

// CategoryProjectionByID selects one category as a DTO.
func CategoryProjectionByID(id uuid.UUID) *Spec[models.CategoryDTO] {
	return categoryProjection().Where("categories.id = ?", id)
}

// CategoryPage lists categories matching search on name, newest first.
func CategoryPage(search string) *Spec[models.CategoryDTO] {
	return categoryProjection().
		Search(search, "categories.name").
		OrderByRecency()
}

// PaymentMethodByID selects one payment method entity.
func PaymentMethodByID(id uuid.UUID) *Spec[entities.PaymentMethod] {
	return New[entities.PaymentMethod](&entities.PaymentMethod{}, "payment_methods").
		Where("payment_methods.id = ?", id)
}

func paymentMethodProjection() *Spec[models.PaymentMethodDTO] {
	return New[models.PaymentMethodDTO](&entities.PaymentMethod{}, "payment_methods").
		Select(
			"payment_methods.id AS id",
			"payment_methods.name AS name",
			"payment_methods.created_at AS created_at",
			"payment_methods.updated_at AS updated_at",
		)
}

// PaymentMethodProjectionByID selects one payment method as a DTO.
func PaymentMethodProjectionByID(id uuid.UUID) *Spec[models.PaymentMethodDTO] {
	return paymentMethodProjection().Where("payment_methods.id = ?", id)
}

// PaymentMethodPage lists payment methods matching search on name, newest first.
func PaymentMethodPage(search string) *Spec[models.PaymentMethodDTO] {
	return paymentMethodProjection().
		Search(search, "payment_methods.name").
		OrderByRecency()
}

// ExpensesReferencingCategory counts expenses and incomes that block a category delete.
func ExpensesReferencingCategory(id uuid.UUID) *Spec[entities.Expense] {
	return New[entities.Expense](&entities.Expense{}, "expenses").Where("expenses.category_id = ?", id)
}

func IncomesReferencingCategory(id uuid.UUID) *Spec[entities.Income] {
	return New[entities.Income](&entities.Income{}, "incomes").Where("incomes.category_id = ?", id)
}

func ExpensesReferencingPaymentMethod(id uuid.UUID) *Spec[entities.Expense] {
	return New[entities.Expense](&entities.Expense{}, "expenses").Where("expenses.payment_method_id = ?", id)
}

func IncomesReferencingPaymentMethod(id uuid.UUID) *Spec[entities.Income] {
	return New[entities.Income](&entities.Income{}, "incomes").Where("incomes.payment_method_id = ?", id)
}
