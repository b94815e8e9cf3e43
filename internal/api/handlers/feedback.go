package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/api/services"
	"github.com/devpatel-io/inklens/internal/config"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/devpatel-io/inklens/internal/utils"
)

// mailFailureMessage maps the mail error taxonomy to a user-facing message.
// Delivery failures are non-fatal; the request still completes.
func mailFailureMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrMailAuth):
		return "Failed to send your message. Authentication error"
	case errors.Is(err, services.ErrMailTimeout):
		return "Failed to send your message. Connection timeout."
	default:
		return "Failed to send your message. Please try again later"
	}
}

// POST /api/v1/feedback
// SubmitFeedback godoc
// @Summary Send a contact-form message to the operators
// @Tags Feedback
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/feedback [post]
func SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Name == "" || input.Email == "" || input.Message == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if services.Mail == nil || config.Envs.SMTP.FeedbackTo == "" {
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: false,
			Message: "Failed to send your message. Please try again later",
		})
		return
	}

	body := fmt.Sprintf("New message from contact form:\n\nName: %s\nEmail: %s\n\nMessage:\n%s\n",
		input.Name, input.Email, input.Message)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	err := services.Mail.Send(ctx, config.Envs.SMTP.FeedbackTo,
		"Contact Form: Message from "+input.Name, body, input.Email)
	if err != nil {
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: false,
			Message: mailFailureMessage(err),
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Thank you! Your message has been sent.",
		Data:    map[string]any{"emailSent": true},
	})
}

// POST /api/v1/rating
// SubmitRating godoc
// @Summary Submit a star rating with an optional comment
// @Tags Feedback
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/rating [post]
func SubmitRating(w http.ResponseWriter, r *http.Request) {
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
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Rating < 1 || input.Rating > 5 {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	activity.Record(userID.String(), "Rating Submitted", fmt.Sprintf("Rating: %d/5 stars", input.Rating))

	emailSent := false
	if services.Mail != nil && config.Envs.SMTP.FeedbackTo != "" {
		user, err := repositories.GetUser(userID)
		if err == nil {
			body := fmt.Sprintf("New rating submission:\n\nUsername: %s\nEmail: %s\nRating: %d/5 stars\n\nAdditional Comment:\n%s\n",
				user.Username, user.Email, input.Rating, input.Comment)

			ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
			defer cancel()

			// The rating is accepted even when the notification fails.
			sendErr := services.Mail.Send(ctx, config.Envs.SMTP.FeedbackTo,
				fmt.Sprintf("Rating Notification: %s rated %d/5 stars", user.Username, input.Rating),
				body, user.Email)
			emailSent = sendErr == nil
		}
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Thank you for your rating!",
		Data:    map[string]any{"emailSent": emailSent},
	})
}
