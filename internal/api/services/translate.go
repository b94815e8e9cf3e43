package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const translateTimeout = 15 * time.Second

// TranslateClient calls the Google Translate v2 REST endpoint. Failures
// come back as errors, never as marker strings inside the translated text.
type TranslateClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewTranslateClient(apiKey, baseURL string) *TranslateClient {
	if baseURL == "" {
		baseURL = "https://translation.googleapis.com"
	}
	return &TranslateClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: translateTimeout},
	}
}

type translateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Translate converts text into the target language code.
func (c *TranslateClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: translate API key not configured", ErrService)
	}
	if targetLang == "" {
		targetLang = "es"
	}

	raw, err := json.Marshal(translateRequest{
		Q:      []string{text},
		Target: targetLang,
		Format: "text",
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/language/translate/v2?key=%s", c.BaseURL, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: translate status=%d body=%s", ErrService, resp.StatusCode, string(b))
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding translate response: %v", ErrService, err)
	}
	if out.Error.Message != "" {
		return "", fmt.Errorf("%w: translate: %s", ErrService, out.Error.Message)
	}
	if len(out.Data.Translations) == 0 {
		return "", fmt.Errorf("%w: empty translate response", ErrService)
	}
	return out.Data.Translations[0].TranslatedText, nil
}
