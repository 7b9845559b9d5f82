package services

import (
	"bytes"
	"encoding/csv"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// dataService handles bulk data operations: CSV export and full wipes.
type dataService struct {
	db *gorm.DB
}

// NewDataService creates a new DataServicer.
func NewDataService(db *gorm.DB) DataServicer {
	return &dataService{db: db}
}

// ExportTransactionsCSV renders all of the user's transactions as CSV,
// newest first.
func (s *dataService) ExportTransactionsCSV(userID string) ([]byte, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Amount", "Type", "Category", "Description", "Account", "Notes"}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, t := range transactions {
		record := []string{
			t.Date.Format("2006-01-02"),
			t.Amount.String(),
			string(t.Type),
			t.CategoryName,
			t.Description,
			t.AccountID,
			t.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}

// ClearUserData permanently deletes all of the user's transactions,
// budgets, accounts, categories, and settings in one transaction. The
// user record itself is kept.
func (s *dataService) ClearUserData(userID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Transaction{},
			&models.Budget{},
			&models.Account{},
			&models.Category{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&models.UserSettings{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
