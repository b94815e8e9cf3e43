package repositories

import (
	"github.com/devpatel-io/inklens/internal/models"
	"github.com/google/uuid"
)

// AppendRecord stores one successful extraction. Insert-only; the
// timestamp defaults to insertion time.
func AppendRecord(userID uuid.UUID, image, text, imageKey string) (*models.HistoryRecord, error) {
	record := models.HistoryRecord{
		UserID:   userID,
		Image:    image,
		Text:     text,
		ImageKey: imageKey,
	}
	if err := DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// QueryRecords returns the user's history newest first. A non-empty filter
// matches as a substring against the extracted text or the formatted
// timestamp; an empty filter returns everything.
func QueryRecords(userID uuid.UUID, filter string) ([]models.HistoryRecord, error) {
	q := DB.Where("user_id = ?", userID)
	if filter != "" {
		like := "%" + filter + "%"
		q = q.Where("text LIKE ? OR CAST(created_at AS TEXT) LIKE ?", like, like)
	}
	var records []models.HistoryRecord
	err := q.Order("created_at DESC, id DESC").Find(&records).Error
	return records, err
}

// GetRecord fetches one record, enforcing ownership in the query itself.
func GetRecord(userID uuid.UUID, recordID uint) (*models.HistoryRecord, error) {
	var record models.HistoryRecord
	err := DB.Where("id = ? AND user_id = ?", recordID, userID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ClearRecords deletes the user's entire history. Irreversible.
func ClearRecords(userID uuid.UUID) error {
	return DB.Where("user_id = ?", userID).
		Delete(&models.HistoryRecord{}).Error
}
