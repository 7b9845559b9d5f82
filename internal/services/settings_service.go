package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// settingsService handles per-user settings.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// defaultSettings returns the settings a user has before saving any.
func defaultSettings(userID string) *models.UserSettings {
	return &models.UserSettings{
		UserID:        userID,
		CycleStartDay: 1,
		Currency:      "USD ($)",
		Language:      "English (US)",
		Theme:         "dark",
	}
}

// GetSettings returns the user's settings, or the defaults when none
// have been saved yet.
func (s *settingsService) GetSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultSettings(userID), nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateSettings merges the patch into the user's current (or default)
// settings and upserts the row.
func (s *settingsService) UpdateSettings(userID string, patch SettingsPatch) (*models.UserSettings, error) {
	if patch.CycleStartDay != nil && (*patch.CycleStartDay < 1 || *patch.CycleStartDay > 31) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cycle start day must be between 1 and 31")
	}

	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if patch.CycleStartDay != nil {
		settings.CycleStartDay = *patch.CycleStartDay
	}
	if patch.Currency != nil {
		settings.Currency = *patch.Currency
	}
	if patch.Language != nil {
		settings.Language = *patch.Language
	}
	if patch.Theme != nil {
		settings.Theme = *patch.Theme
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return settings, nil
}
