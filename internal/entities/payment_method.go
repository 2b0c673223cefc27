package entities

// PaymentMethod represents a payment method row shared by every user
type PaymentMethod struct {
	Base
	Name string `gorm:"size:255;not null"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }
