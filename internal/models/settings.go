package models

import "time"

// UserSettings holds per-user preferences, keyed by user ID.
// CycleStartDay configures the recurring budgeting window, e.g. a value of
// 5 means cycles run from the 5th of a month to the 4th of the next.
type UserSettings struct {
	UserID        string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CycleStartDay int       `gorm:"not null;default:1" json:"cycle_start_day"`
	Currency      string    `json:"currency,omitempty"`
	Language      string    `json:"language,omitempty"`
	Theme         string    `json:"theme,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
