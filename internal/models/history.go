package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is one successful text extraction. Append-only.
type HistoryRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Image     string    `json:"image" gorm:"not null"` // source filename as uploaded
	Text      string    `json:"text" gorm:"type:text;not null"`
	ImageKey  string    `json:"-"` // object-storage key of the archived source image, if archived
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
