package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneta/internal/cycle"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// budgetService handles budget-related business logic. Budgets have no
// ledger coupling: usage is a pure aggregation over expense transactions.
type budgetService struct {
	db              *gorm.DB
	settingsService SettingsServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, settingsService SettingsServicer) BudgetServicer {
	return &budgetService{db: db, settingsService: settingsService}
}

// CreateBudget creates a spending limit for a category.
func (s *budgetService) CreateBudget(userID, categoryName string, amount decimal.Decimal) (*models.Budget, error) {
	if categoryName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount cannot be negative")
	}

	budget := &models.Budget{
		UserID:       userID,
		CategoryName: categoryName,
		Amount:       amount,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetUserBudgets returns the user's budgets ordered by category name.
func (s *budgetService) GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Order("category_name ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID retrieves a budget by ID for a specific user
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates a budget's category name and/or amount.
func (s *budgetService) UpdateBudget(userID, budgetID string, categoryName *string, amount *decimal.Decimal) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if categoryName != nil && *categoryName != "" {
		updates["category_name"] = *categoryName
	}
	if amount != nil {
		if amount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount cannot be negative")
		}
		updates["amount"] = *amount
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", budget.ID).First(budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// DeleteBudget removes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetUsage sums the user's expense transactions for the budget's
// category within the cycle containing ref, using the user's configured
// cycle start day.
func (s *budgetService) GetBudgetUsage(userID, budgetID string, ref time.Time) (*BudgetUsage, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if ref.IsZero() {
		ref = time.Now()
	}
	start, end := cycle.Range(ref, settings.CycleStartDay)

	var spent decimal.Decimal
	err = s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category_name = ? AND type = ? AND date BETWEEN ? AND ?",
			userID, budget.CategoryName, models.TransactionTypeExpense, start, end).
		Scan(&spent).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &BudgetUsage{
		BudgetID:     budget.ID,
		CategoryName: budget.CategoryName,
		Budgeted:     budget.Amount,
		Spent:        spent,
		Remaining:    budget.Amount.Sub(spent),
		CycleStart:   start,
		CycleEnd:     end,
	}, nil
}
