package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one login event. A user may hold many concurrent sessions,
// one row per device/browser.
type Session struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"` // opaque, held in the client's auth cookie
	IPAddress  string    `json:"ipAddress"`
	DeviceInfo string    `json:"deviceInfo"`
	LastActive time.Time `json:"lastActive" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
