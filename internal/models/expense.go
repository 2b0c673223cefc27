package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseDTO is the projection of an expense, including the display names of its references
type ExpenseDTO struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"userId"`
	Amount            decimal.Decimal `json:"amount"`
	Description       *string         `json:"description"`
	Date              time.Time       `json:"date"`
	CategoryID        uuid.UUID       `json:"categoryId"`
	CategoryName      string          `json:"categoryName"`
	PaymentMethodID   uuid.UUID       `json:"paymentMethodId"`
	PaymentMethodName string          `json:"paymentMethodName"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ExpenseAddDTO represents the request body for recording an expense.
// The owner is always the caller and is never read from the body.
type ExpenseAddDTO struct {
	Amount          decimal.Decimal `json:"amount"`
	Description     *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Date            time.Time       `json:"date" binding:"required" validate:"required"`
	CategoryID      uuid.UUID       `json:"categoryId" binding:"required" validate:"required"`
	PaymentMethodID uuid.UUID       `json:"paymentMethodId" binding:"required" validate:"required"`
}

// ExpenseUpdateDTO represents a partial expense update. A null description clears it.
type ExpenseUpdateDTO struct {
	ID              uuid.UUID        `json:"id"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Description     Optional[string] `json:"description"`
	Date            *time.Time       `json:"date,omitempty"`
	CategoryID      *uuid.UUID       `json:"categoryId,omitempty"`
	PaymentMethodID *uuid.UUID       `json:"paymentMethodId,omitempty"`
}
