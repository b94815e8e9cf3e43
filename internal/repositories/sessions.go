package repositories

import (
	"errors"
	"time"

	"github.com/devpatel-io/inklens/internal/config"
	"github.com/devpatel-io/inklens/internal/models"
	"github.com/devpatel-io/inklens/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const createSessionAttempts = 3

// CreateSession records a login event and returns the opaque session token
// the client holds in its auth cookie. Token entropy makes collisions
// practically impossible; the unique index plus regeneration guards the
// remaining case. Oldest sessions beyond the per-user cap are evicted.
func CreateSession(userID uuid.UUID, ip, device string) (string, error) {
	var lastErr error
	for i := 0; i < createSessionAttempts; i++ {
		token, err := utils.GenerateSecureToken(32)
		if err != nil {
			return "", err
		}
		session := models.Session{
			UserID:     userID,
			Token:      token,
			IPAddress:  ip,
			DeviceInfo: device,
			LastActive: time.Now(),
		}
		err = DB.Create(&session).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			lastErr = err
			continue
		}
		if err != nil {
			return "", err
		}
		if err := enforceSessionCap(userID); err != nil {
			return "", err
		}
		return token, nil
	}
	return "", lastErr
}

// enforceSessionCap deletes the least-recently-active rows beyond the
// configured per-user maximum.
func enforceSessionCap(userID uuid.UUID) error {
	max := config.Envs.MaxSessionsPerUser
	if max <= 0 {
		return nil
	}
	keep := DB.Model(&models.Session{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("last_active DESC").
		Limit(max)
	return DB.Where("user_id = ? AND id NOT IN (?)", userID, keep).
		Delete(&models.Session{}).Error
}

// TouchSession refreshes last-active for an existing (user, token) row, or
// inserts one if the cookie outlived its row. Idempotent upsert.
func TouchSession(userID uuid.UUID, token, ip, device string) error {
	if token == "" {
		return nil
	}
	res := DB.Model(&models.Session{}).
		Where("user_id = ? AND token = ?", userID, token).
		Update("last_active", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	session := models.Session{
		UserID:     userID,
		Token:      token,
		IPAddress:  ip,
		DeviceInfo: device,
		LastActive: time.Now(),
	}
	err := DB.Create(&session).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race with a concurrent touch of the same cookie.
		return nil
	}
	return err
}

// ListSessions returns the user's sessions, most recently active first.
func ListSessions(userID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	err := DB.Where("user_id = ?", userID).
		Order("last_active DESC, id DESC").
		Find(&sessions).Error
	return sessions, err
}

// TerminateSession deletes the row only if it belongs to the caller. An
// ownership mismatch returns false with no further detail so the existence
// of another user's session never leaks.
func TerminateSession(userID uuid.UUID, sessionID uint) (bool, error) {
	res := DB.Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&models.Session{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DestroySession removes the row matching user and token at logout.
// No-op if the row is already gone.
func DestroySession(userID uuid.UUID, token string) error {
	if token == "" {
		return nil
	}
	return DB.Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.Session{}).Error
}
