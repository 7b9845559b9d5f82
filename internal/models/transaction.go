package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a financial transaction in the system.
// Amount is a positive magnitude; the sign of its balance effect is
// determined by Type. For transfers, ToAccountID must be set and
// TransferFee (deducted from the source account only) may be non-zero.
type Transaction struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID    string          `gorm:"type:uuid;not null;index" json:"account_id"`
	ToAccountID  *string         `gorm:"type:uuid" json:"to_account_id,omitempty"`
	Type         TransactionType `gorm:"not null" json:"type"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	TransferFee  decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"transfer_fee"`
	CategoryName string          `json:"category_name,omitempty"`
	Description  string          `json:"description"`
	Notes        string          `json:"notes,omitempty"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
}
