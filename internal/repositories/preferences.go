package repositories

import (
	"errors"

	"github.com/devpatel-io/inklens/internal/models"
	"github.com/devpatel-io/inklens/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference and 2FA writes are single atomic upsert statements so two
// concurrent toggles from the same user's tabs cannot lose an update.

func upsertPreference(userID uuid.UUID, column string, value interface{}) error {
	pref := models.Preference{UserID: userID, Language: "en"}
	switch column {
	case "analytics":
		pref.Analytics = value.(bool)
	case "notifications":
		pref.Notifications = value.(bool)
	case "language":
		pref.Language = value.(string)
	}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{column: value}),
	}).Create(&pref).Error
}

func SetAnalytics(userID uuid.UUID, enabled bool) error {
	return upsertPreference(userID, "analytics", enabled)
}

func SetNotifications(userID uuid.UUID, enabled bool) error {
	return upsertPreference(userID, "notifications", enabled)
}

func SetLanguage(userID uuid.UUID, language string) error {
	return upsertPreference(userID, "language", language)
}

// GetPreference returns the user's preference row, creating it with
// defaults on first settings view.
func GetPreference(userID uuid.UUID) (*models.Preference, error) {
	pref := models.Preference{UserID: userID, Language: "en"}
	err := DB.Where("user_id = ?", userID).
		Attrs(models.Preference{Language: "en"}).
		FirstOrCreate(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// SetTwoFactor toggles 2FA. The shared secret is generated once on the
// first toggle and never regenerated, so re-enabling keeps the old secret.
func SetTwoFactor(userID uuid.UUID, enabled bool) error {
	secret, err := utils.GenerateHexSecret(16)
	if err != nil {
		return err
	}
	state := models.TwoFactorState{
		UserID:  userID,
		Enabled: enabled,
		Secret:  secret,
	}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"enabled": enabled}),
	}).Create(&state).Error
}

// GetTwoFactor reports the 2FA state; a missing row means disabled.
func GetTwoFactor(userID uuid.UUID) (*models.TwoFactorState, error) {
	var state models.TwoFactorState
	err := DB.Where("user_id = ?", userID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.TwoFactorState{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}
