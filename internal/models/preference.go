package models

import "github.com/google/uuid"

// Preference holds per-user settings toggles. One row per user, created
// lazily on first settings view or first toggle.
type Preference struct {
	UserID        uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	Analytics     bool      `json:"analytics" gorm:"default:false"`
	Notifications bool      `json:"notifications" gorm:"default:false"`
	Language      string    `json:"language" gorm:"default:'en'"`
}
