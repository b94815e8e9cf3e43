package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/api"
	"github.com/devpatel-io/inklens/internal/api/services"
	"github.com/devpatel-io/inklens/internal/config"
	"github.com/devpatel-io/inklens/internal/repositories"
)

func main() {
	cfg := config.Envs

	// Connect to database and run the startup migration
	repositories.ConnectDatabase()

	if cfg.Storage.AccessKeyID != "" {
		if err := repositories.InitStorage(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.AccountID,
			cfg.Storage.BucketName,
			cfg.Storage.Region,
		); err != nil {
			log.Fatal("Failed to initialize image storage:", err)
		}
	} else {
		log.Println("Image storage not configured, source images will not be archived")
	}

	activity.Init(cfg.ActivityLogDir)
	services.Init()

	mux := api.SetupRouter()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting Inklens server on port: %s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", cfg.Port, err)
	}
}
