package entities

// Category represents a category row shared by every user
type Category struct {
	Base
	Name string `gorm:"size:255;not null"`
	Type string `gorm:"size:20;not null"`
}

func (Category) TableName() string { return "categories" }
