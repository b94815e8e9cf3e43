package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/models"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/devpatel-io/inklens/internal/utils"
	"gorm.io/gorm"
)

// GET /api/v1/history?query=
// GetHistory godoc
// @Summary List extraction history, newest first
// @Description Optional query matches as a substring against text or timestamp.
// @Tags History
// @Produce json
// @Param query query string false "Substring filter"
// @Success 200 {object} utils.Payload
// @Router /api/v1/history [get]
func GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	if query != "" {
		activity.Record(userID.String(), "Searched History", "Query: "+query)
	} else {
		activity.Record(userID.String(), "Viewed History", "")
	}

	records, err := repositories.QueryRecords(userID, query)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to load history",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "History retrieved successfully",
		Data: map[string]any{
			"records": records,
		},
	})
}

// POST /api/v1/history/clear
// ClearHistory godoc
// @Summary Delete the caller's entire history
// @Tags History
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/history/clear [post]
func ClearHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := repositories.ClearRecords(userID); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to clear history",
		})
		return
	}

	activity.Record(userID.String(), "Cleared History", "")

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "History cleared",
	})
}

// historyRecordFromPath resolves {id} and enforces ownership. Responds and
// returns false when the record cannot be served.
func historyRecordFromPath(w http.ResponseWriter, r *http.Request) (record recordHandle, ok bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return recordHandle{}, false
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid record id",
		})
		return recordHandle{}, false
	}

	rec, err := repositories.GetRecord(userID, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Record not found",
		})
		return recordHandle{}, false
	}
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to load record",
		})
		return recordHandle{}, false
	}
	return recordHandle{userID: userID.String(), record: rec}, true
}

type recordHandle struct {
	userID string
	record *models.HistoryRecord
}

// GET /api/v1/history/{id}/download
// DownloadRecord godoc
// @Summary Download one record's extracted text as a .txt attachment
// @Tags History
// @Produce plain
// @Param id path int true "Record id"
// @Success 200 {string} string
// @Router /api/v1/history/{id}/download [get]
func DownloadRecord(w http.ResponseWriter, r *http.Request) {
	handle, ok := historyRecordFromPath(w, r)
	if !ok {
		return
	}

	base := strings.TrimSuffix(handle.record.Image, ".png")
	base = strings.TrimSuffix(base, ".jpg")
	base = strings.TrimSuffix(base, ".jpeg")

	activity.Record(handle.userID, "Downloaded History Record", "Text from image: "+handle.record.Image)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "history_"+base+".txt"))
	fmt.Fprintln(w, handle.record.Text)
}

// GET /api/v1/history/{id}/image
// RecordImageURL godoc
// @Summary Get a temporary URL for the record's archived source image
// @Tags History
// @Produce json
// @Param id path int true "Record id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/history/{id}/image [get]
func RecordImageURL(w http.ResponseWriter, r *http.Request) {
	handle, ok := historyRecordFromPath(w, r)
	if !ok {
		return
	}

	if !repositories.StorageEnabled() || handle.record.ImageKey == "" {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "No archived image for this record",
		})
		return
	}

	url, err := repositories.ImageDownloadURL(r.Context(), handle.record.ImageKey, 15*time.Minute)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to generate image URL",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Image URL generated",
		Data: map[string]any{
			"url": url,
		},
	})
}
