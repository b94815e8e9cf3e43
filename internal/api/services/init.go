package services

import (
	"log"

	"github.com/devpatel-io/inklens/internal/config"
)

// Shared service clients, wired once at startup from config. Mail stays nil
// when SMTP is not configured; callers degrade to a user-visible failure.
var (
	OCR        *VisionClient
	Translator *TranslateClient
	Mail       *Mailer
)

func Init() {
	cfg := config.Envs

	OCR = NewVisionClient(cfg.OCR.APIKey, cfg.OCR.BaseURL)
	Translator = NewTranslateClient(cfg.Translate.APIKey, cfg.Translate.BaseURL)

	if cfg.SMTP.Host != "" {
		mailer, err := NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		if err != nil {
			log.Println("Mailer disabled:", err)
		} else {
			Mail = mailer
		}
	} else {
		log.Println("SMTP not configured, outbound email disabled")
	}
}
