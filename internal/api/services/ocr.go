package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrService marks any transport or API-level failure of an external
// collaborator (OCR, translation).
var ErrService = errors.New("external service failure")

const ocrTimeout = 30 * time.Second

// VisionClient extracts handwritten text via the Google Cloud Vision
// images:annotate endpoint. Latency is unbounded on the API side, so every
// call carries a timeout.
type VisionClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewVisionClient(apiKey, baseURL string) *VisionClient {
	if baseURL == "" {
		baseURL = "https://vision.googleapis.com"
	}
	return &VisionClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: ocrTimeout},
	}
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// ExtractText runs document text detection on the image bytes and returns
// the full extracted text.
func (c *VisionClient) ExtractText(ctx context.Context, image []byte) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: vision API key not configured", ErrService)
	}

	reqBody := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	}
	raw, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1/images:annotate?key=%s", c.BaseURL, c.APIKey)
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
		return "", fmt.Errorf("%w: vision status=%d body=%s", ErrService, resp.StatusCode, string(b))
	}

	var out visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding vision response: %v", ErrService, err)
	}
	if len(out.Responses) == 0 {
		return "", fmt.Errorf("%w: empty vision response", ErrService)
	}
	if msg := out.Responses[0].Error.Message; msg != "" {
		return "", fmt.Errorf("%w: vision: %s", ErrService, msg)
	}
	return out.Responses[0].FullTextAnnotation.Text, nil
}
