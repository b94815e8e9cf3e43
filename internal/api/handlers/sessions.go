package handlers

import (
	"net/http"
	"strconv"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/devpatel-io/inklens/internal/utils"
)

// GET /api/v1/sessions
// ListSessions godoc
// @Summary List the caller's active sessions
// @Tags Sessions
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/sessions [get]
func ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sessions, err := repositories.ListSessions(userID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to load sessions",
		})
		return
	}

	activity.Record(userID.String(), "Viewed Active Sessions", "")

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Sessions retrieved successfully",
		Data: map[string]any{
			"sessions": sessions,
		},
	})
}

// POST /api/v1/sessions/terminate/{id}
// TerminateSession godoc
// @Summary Terminate one of the caller's sessions
// @Description Returns success=false for a session the caller does not own, with no further detail.
// @Tags Sessions
// @Produce json
// @Param id path int true "Session row id"
// @Success 200 {object} utils.Payload
// @Router /api/v1/sessions/terminate/{id} [post]
func TerminateSession(w http.ResponseWriter, r *http.Request) {
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

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid session id",
		})
		return
	}

	terminated, err := repositories.TerminateSession(userID, uint(id))
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to terminate session",
		})
		return
	}

	if terminated {
		activity.Record(userID.String(), "Terminated Session", "Session ID: "+strconv.FormatUint(id, 10))
	}

	// Ownership mismatches get the same shape with success=false; the
	// response must not reveal whether the session exists.
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: terminated,
		Message: "Session termination processed",
	})
}
