package models

import "github.com/google/uuid"

// TwoFactorState holds the 2FA toggle and shared secret. The secret is
// generated once on first enable and retained across toggles.
type TwoFactorState struct {
	UserID  uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	Enabled bool      `json:"enabled" gorm:"default:false"`
	Secret  string    `json:"-"`
}
