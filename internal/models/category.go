package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType tells whether a category groups expenses or incomes
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "Expense"
	CategoryTypeIncome  CategoryType = "Income"
)

// CategoryDTO is the projection of a category returned to callers
type CategoryDTO struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CategoryAddDTO represents the request body for creating a category
type CategoryAddDTO struct {
	Name string       `json:"name" binding:"required,max=255" validate:"required,notblank,max=255"`
	Type CategoryType `json:"type" binding:"required,oneof=Expense Income" validate:"required,oneof=Expense Income"`
}

// CategoryUpdateDTO represents a partial category update; nil fields are left unchanged
type CategoryUpdateDTO struct {
	ID   uuid.UUID     `json:"id"`
	Name *string       `json:"name,omitempty" validate:"omitempty,notblank,max=255"`
	Type *CategoryType `json:"type,omitempty" validate:"omitempty,oneof=Expense Income"`
}
