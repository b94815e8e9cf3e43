package config

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// FeedbackTo receives contact-form and rating notifications.
	FeedbackTo string
}

type OCRConfig struct {
	APIKey  string
	BaseURL string
}

type TranslateConfig struct {
	APIKey  string
	BaseURL string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	DB_URL             string
	Port               string
	JWTSecret          string
	Environment        string
	FrontendURL        string
	MaxSessionsPerUser int
	MaxUploadBytes     int64
	ActivityLogDir     string
	CorsConfig         cors.Options
	SMTP               SMTPConfig
	OCR                OCRConfig
	Translate          TranslateConfig
	Google             GoogleConfig
	Storage            StorageConfig
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:             getEnv("DB_URL", ""),
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
		Environment:        getEnv("ENV", "development"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		MaxSessionsPerUser: getEnvInt("MAX_SESSIONS_PER_USER", 10),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		ActivityLogDir:     getEnv("ACTIVITY_LOG_DIR", "user_logs"),
		CorsConfig:         CorsConfig(),
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvInt("SMTP_PORT", 465),
			Username:   getEnv("SMTP_USERNAME", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			From:       getEnv("SMTP_FROM", ""),
			FeedbackTo: getEnv("FEEDBACK_EMAIL", ""),
		},
		OCR: OCRConfig{
			APIKey:  getEnv("VISION_API_KEY", ""),
			BaseURL: getEnv("VISION_BASE_URL", "https://vision.googleapis.com"),
		},
		Translate: TranslateConfig{
			APIKey:  getEnv("TRANSLATE_API_KEY", ""),
			BaseURL: getEnv("TRANSLATE_BASE_URL", "https://translation.googleapis.com"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		},
		Storage: StorageConfig{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "https://inklens.vercel.app"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
