package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/devpatel-io/inklens/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/devpatel-io/inklens/internal/api/handlers"
	"github.com/devpatel-io/inklens/internal/api/middleware"
	"github.com/devpatel-io/inklens/internal/config"
	"github.com/rs/cors"
)

func SetupRouter() http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("/sign-up", handlers.RegisterUser)
	authMux.HandleFunc("/verify", handlers.VerifyEmail)
	authMux.HandleFunc("/login", handlers.LoginUser)
	authMux.HandleFunc("/google/login", handlers.HandleGoogleLogin)
	authMux.HandleFunc("/google/callback", handlers.HandleGoogleCallback)
	// Lives on the auth sub-mux because /api/v1/auth/ shadows the protected
	// /api/v1/ tree; wrapped individually so it still requires a session.
	authMux.Handle("/logout", middleware.AuthMiddleware(http.HandlerFunc(handlers.Logout)))

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	mainMux.HandleFunc("/api/v1/feedback", handlers.SubmitFeedback)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("/extract", handlers.ExtractText)
	protectedMux.HandleFunc("/translate", handlers.TranslateText)
	protectedMux.HandleFunc("/rating", handlers.SubmitRating)
	protectedMux.HandleFunc("/activity-log", handlers.DownloadActivityLog)

	historyMux := http.NewServeMux()
	historyMux.HandleFunc("/", handlers.GetHistory)
	historyMux.HandleFunc("/clear", handlers.ClearHistory)
	historyMux.HandleFunc("/{id}/download", handlers.DownloadRecord)
	historyMux.HandleFunc("/{id}/image", handlers.RecordImageURL)

	settingsMux := http.NewServeMux()
	settingsMux.HandleFunc("/", handlers.GetSettings)
	settingsMux.HandleFunc("/profile", handlers.UpdateProfile)
	settingsMux.HandleFunc("/2fa", handlers.Toggle2FA)
	settingsMux.HandleFunc("/analytics", handlers.ToggleAnalytics)
	settingsMux.HandleFunc("/notifications", handlers.ToggleNotifications)
	settingsMux.HandleFunc("/language", handlers.UpdateLanguage)

	sessionsMux := http.NewServeMux()
	sessionsMux.HandleFunc("/", handlers.ListSessions)
	sessionsMux.HandleFunc("/terminate/{id}", handlers.TerminateSession)

	protectedMux.Handle("/history/",
		http.StripPrefix("/history", historyMux),
	)
	protectedMux.HandleFunc("/history", handlers.GetHistory)
	protectedMux.Handle("/settings/",
		http.StripPrefix("/settings", settingsMux),
	)
	protectedMux.HandleFunc("/settings", handlers.GetSettings)
	protectedMux.Handle("/sessions/",
		http.StripPrefix("/sessions", sessionsMux),
	)
	protectedMux.HandleFunc("/sessions", handlers.ListSessions)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
