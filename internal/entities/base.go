package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the columns every table carries. The store assigns all of them.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns the identifier when the caller left it empty.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists the models in dependency order, for schema creation.
func All() []any {
	return []any{
		&Category{},
		&PaymentMethod{},
		&Expense{},
		&Income{},
		&UserProfile{},
		&Feedback{},
	}
}
