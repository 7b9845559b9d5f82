package models

import "github.com/shopspring/decimal"

// Budget represents a spending limit for a category. Budgets are read-only
// collaborators of the ledger: the budgets view compares them against
// expense transactions aggregated by category and cycle.
type Budget struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryName string          `gorm:"not null" json:"category_name"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
}
