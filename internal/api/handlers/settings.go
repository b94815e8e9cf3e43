package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/api/middleware"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/devpatel-io/inklens/internal/utils"
)

// GET /api/v1/settings
// GetSettings godoc
// @Summary Show profile, preferences and 2FA state
// @Description Also refreshes the caller's session last-active timestamp.
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/settings [get]
func GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := repositories.GetUser(userID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to load profile",
		})
		return
	}

	pref, err := repositories.GetPreference(userID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to load preferences",
		})
		return
	}

	twofa, err := repositories.GetTwoFactor(userID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to load 2FA state",
		})
		return
	}

	// A settings view counts as session activity. The upsert also heals the
	// case where the cookie outlived its session row.
	if token, ok := middleware.SessionTokenFromContext(r.Context()); ok {
		_ = repositories.TouchSession(userID, token, clientIP(r), r.UserAgent())
	}

	activity.Record(userID.String(), "Viewed Settings Page", "")

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Settings retrieved successfully",
		Data: map[string]any{
			"username":      user.Username,
			"email":         user.Email,
			"analytics":     pref.Analytics,
			"notifications": pref.Notifications,
			"language":      pref.Language,
			"twofaEnabled":  twofa.Enabled,
		},
	})
}

// POST /api/v1/settings/profile
// UpdateProfile godoc
// @Summary Partially update username, email or password
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/settings/profile [post]
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	changes := []string{}
	if input.Username != "" {
		changes = append(changes, "username")
	}
	if input.Email != "" {
		changes = append(changes, "email")
	}
	if input.Password != "" {
		changes = append(changes, "password")
	}
	if len(changes) == 0 {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Nothing to update",
		})
		return
	}

	err := repositories.UpdateProfile(userID, repositories.ProfileUpdate{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	switch {
	case errors.Is(err, repositories.ErrDuplicateIdentity):
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Username or email is already taken",
		})
		return
	case err != nil:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to update profile",
		})
		return
	}

	activity.Record(userID.String(), "Profile Update", "Changed: "+strings.Join(changes, ", "))

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile updated successfully",
	})
}

func decodeToggle(w http.ResponseWriter, r *http.Request) (enabled bool, ok bool) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return false, false
	}
	var input struct {
		Enabled bool `json:"enabled"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return false, false
	}
	return input.Enabled, true
}

func respondToggle(w http.ResponseWriter, err error, key string, value any) {
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to save setting",
		})
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Setting saved",
		Data:    map[string]any{key: value},
	})
}

// POST /api/v1/settings/2fa
func Toggle2FA(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	enabled, ok := decodeToggle(w, r)
	if !ok {
		return
	}
	err := repositories.SetTwoFactor(userID, enabled)
	if err == nil {
		activity.Record(userID.String(), "2FA Setting Changed", boolDetail("Enabled", enabled))
	}
	respondToggle(w, err, "enabled", enabled)
}

// POST /api/v1/settings/analytics
func ToggleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	enabled, ok := decodeToggle(w, r)
	if !ok {
		return
	}
	err := repositories.SetAnalytics(userID, enabled)
	if err == nil {
		activity.Record(userID.String(), "Analytics Setting Changed", boolDetail("Enabled", enabled))
	}
	respondToggle(w, err, "enabled", enabled)
}

// POST /api/v1/settings/notifications
func ToggleNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	enabled, ok := decodeToggle(w, r)
	if !ok {
		return
	}
	err := repositories.SetNotifications(userID, enabled)
	if err == nil {
		activity.Record(userID.String(), "Notifications Setting Changed", boolDetail("Enabled", enabled))
	}
	respondToggle(w, err, "enabled", enabled)
}

// POST /api/v1/settings/language
func UpdateLanguage(w http.ResponseWriter, r *http.Request) {
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
	var input struct {
		Language string `json:"language"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Language == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}
	err := repositories.SetLanguage(userID, input.Language)
	if err == nil {
		activity.Record(userID.String(), "Language Setting Changed", "Language: "+input.Language)
	}
	respondToggle(w, err, "language", input.Language)
}

func boolDetail(label string, v bool) string {
	if v {
		return label + ": true"
	}
	return label + ": false"
}
