package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents an expense owned by one user. UserID never changes after creation.
type Expense struct {
	Base
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Description     *string         `gorm:"size:500"`
	Date            time.Time       `gorm:"not null"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category        *Category       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	PaymentMethodID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentMethod   *PaymentMethod  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Expense) TableName() string { return "expenses" }
