package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a user-defined transaction category.
type Category struct {
	Base
	UserID string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string       `gorm:"not null" json:"name"`
	Type   CategoryType `gorm:"not null" json:"type"`
	Icon   string       `json:"icon,omitempty"`
	Color  string       `json:"color,omitempty"`
}

// DefaultCategories are available to every user without being stored.
var DefaultCategories = []Category{
	{Name: "Salary", Type: CategoryTypeIncome, Color: "#10B981", Icon: "Wallet"},
	{Name: "Freelance", Type: CategoryTypeIncome, Color: "#34D399", Icon: "Laptop"},
	{Name: "Housing", Type: CategoryTypeExpense, Color: "#F87171", Icon: "Home"},
	{Name: "Food", Type: CategoryTypeExpense, Color: "#FBBF24", Icon: "Utensils"},
	{Name: "Transportation", Type: CategoryTypeExpense, Color: "#60A5FA", Icon: "Car"},
	{Name: "Utilities", Type: CategoryTypeExpense, Color: "#A78BFA", Icon: "Zap"},
	{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#F472B6", Icon: "Film"},
	{Name: "Health", Type: CategoryTypeExpense, Color: "#EF4444", Icon: "Heart"},
	{Name: "Shopping", Type: CategoryTypeExpense, Color: "#F59E0B", Icon: "ShoppingBag"},
}
