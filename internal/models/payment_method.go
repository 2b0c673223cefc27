package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethodDTO is the projection of a payment method returned to callers
type PaymentMethodDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentMethodAddDTO represents the request body for creating a payment method
type PaymentMethodAddDTO struct {
	Name string `json:"name" binding:"required,max=255" validate:"required,notblank,max=255"`
}

// PaymentMethodUpdateDTO represents a partial payment method update
type PaymentMethodUpdateDTO struct {
	ID   uuid.UUID `json:"id"`
	Name *string   `json:"name,omitempty" validate:"omitempty,notblank,max=255"`
}
