package handlers

import (
	"net/http"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/utils"
)

// GET /api/v1/activity-log
// DownloadActivityLog godoc
// @Summary Download the caller's activity log as a .txt attachment
// @Tags Activity
// @Produce plain
// @Success 200 {string} string
// @Router /api/v1/activity-log [get]
func DownloadActivityLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	path, err := activity.FilePath(userID.String())
	if err != nil {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Activity log unavailable",
		})
		return
	}

	activity.Record(userID.String(), "Activity Log Downloaded", "")

	w.Header().Set("Content-Disposition", `attachment; filename="activity_log_`+userID.String()+`.txt"`)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, path)
}
