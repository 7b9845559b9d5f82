package models

import "github.com/shopspring/decimal"

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking   AccountType = "Checking"
	AccountTypeSavings    AccountType = "Savings"
	AccountTypeCredit     AccountType = "Credit"
	AccountTypeInvestment AccountType = "Investment"
	AccountTypeCash       AccountType = "Cash"
	AccountTypeLoan       AccountType = "Loan"
)

// AccountTypes lists every valid account type.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeCredit,
	AccountTypeInvestment,
	AccountTypeCash,
	AccountTypeLoan,
}

// Account represents a financial account in the system.
//
// Balance is a running total derived from the net effect of every
// transaction referencing the account since creation. It is maintained
// incrementally by the ledger engine (the only writer) and is never
// recomputed from history outside of consistency checks in tests.
type Account struct {
	Base
	UserID  string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name    string          `gorm:"not null" json:"name"`
	Type    AccountType     `gorm:"not null" json:"type"`
	Balance decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`

	// Display metadata, e.g. a CSS gradient class or hex color.
	BgGradient string `json:"bg_gradient,omitempty"`
}
