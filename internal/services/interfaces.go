// Package services contains the business logic of the Moneta API. The
// ledger engine lives in the transaction service: it is the only writer
// of account balances and applies every balance side effect atomically
// with its transaction record write.
package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneta/internal/models"
	"moneta/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// AccountServicer defines the contract for account-related business logic.
// LockAccounts and ApplyBalanceDelta run inside a ledger transaction scope
// and are not meant to be called outside the transaction service.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType models.AccountType, initialBalance decimal.Decimal, bgGradient string) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(userID, accountID string) error

	LockAccounts(tx *gorm.DB, userID string, ids []string) (map[string]*models.Account, error)
	ApplyBalanceDelta(tx *gorm.DB, account *models.Account, delta decimal.Decimal) error
}

// AccountUpdateFields holds optional metadata fields for an account update.
// Balance is deliberately absent: it is owned by the ledger engine.
type AccountUpdateFields struct {
	Name       *string
	Type       *models.AccountType
	BgGradient *string
}

// TransactionInput holds the full payload for creating a transaction.
type TransactionInput struct {
	AccountID    string
	ToAccountID  *string
	Type         models.TransactionType
	Amount       decimal.Decimal
	TransferFee  decimal.Decimal
	CategoryName string
	Description  string
	Notes        string
	Date         time.Time
}

// TransactionPatch holds partial new field values for an update. Nil
// pointers leave the field untouched.
type TransactionPatch struct {
	AccountID    *string
	ToAccountID  *string
	Type         *models.TransactionType
	Amount       *decimal.Decimal
	TransferFee  *decimal.Decimal
	CategoryName *string
	Description  *string
	Notes        *string
	Date         *time.Time
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate     *time.Time
	ToDate       *time.Time
	Type         *models.TransactionType
	CategoryName *string
	AccountID    *string
}

// TransactionServicer defines the contract for the ledger engine and its
// read layer.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetRecentTransactions(userID string, limit int) ([]models.Transaction, error)
}

// BudgetUsage contains spending vs budget data for one cycle window.
type BudgetUsage struct {
	BudgetID     string          `json:"budget_id"`
	CategoryName string          `json:"category_name"`
	Budgeted     decimal.Decimal `json:"budgeted"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	CycleStart   time.Time       `json:"cycle_start"`
	CycleEnd     time.Time       `json:"cycle_end"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryName string, amount decimal.Decimal) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, categoryName *string, amount *decimal.Decimal) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetUsage(userID, budgetID string, ref time.Time) (*BudgetUsage, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	GetUserCategories(userID string) ([]models.Category, error)
	CreateCategory(userID, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// SettingsServicer defines the contract for per-user settings.
type SettingsServicer interface {
	GetSettings(userID string) (*models.UserSettings, error)
	UpdateSettings(userID string, patch SettingsPatch) (*models.UserSettings, error)
}

// SettingsPatch holds optional new values for user settings.
type SettingsPatch struct {
	CycleStartDay *int
	Currency      *string
	Language      *string
	Theme         *string
}

// DataServicer defines the contract for bulk data operations.
type DataServicer interface {
	ExportTransactionsCSV(userID string) ([]byte, error)
	ClearUserData(userID string) error
}
