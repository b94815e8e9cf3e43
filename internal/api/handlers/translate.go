package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/api/services"
	"github.com/devpatel-io/inklens/internal/utils"
)

// POST /api/v1/translate
// TranslateText godoc
// @Summary Translate extracted text
// @Tags Translate
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/v1/translate [post]
func TranslateText(w http.ResponseWriter, r *http.Request) {
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
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Text == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	translated, err := services.Translator.Translate(ctx, input.Text, input.Language)
	if err != nil {
		// Surfaced to the user as retryable, never retried here.
		utils.JSONResponse(w, http.StatusBadGateway, utils.Payload{
			Success: false,
			Message: "Translation failed, please try again",
		})
		return
	}

	activity.Record(userID.String(), "Translation", "Language: "+input.Language)

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Text translated successfully",
		Data: map[string]any{
			"translatedText": translated,
			"language":       input.Language,
		},
	})
}
