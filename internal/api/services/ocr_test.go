package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/images:annotate", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req visionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		assert.Equal(t, "DOCUMENT_TEXT_DETECTION", req.Requests[0].Features[0].Type)
		assert.NotEmpty(t, req.Requests[0].Image.Content)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"responses": []map[string]interface{}{
				{"fullTextAnnotation": map[string]string{"text": "hello world"}},
			},
		})
	}))
	defer srv.Close()

	client := NewVisionClient("test-key", srv.URL)
	text, err := client.ExtractText(context.Background(), []byte("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtractText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responses": []map[string]interface{}{
				{"error": map[string]string{"message": "image too large"}},
			},
		})
	}))
	defer srv.Close()

	client := NewVisionClient("test-key", srv.URL)
	_, err := client.ExtractText(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrService)
}

func TestExtractText_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewVisionClient("test-key", srv.URL)
	_, err := client.ExtractText(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrService)
}

func TestExtractText_MissingKey(t *testing.T) {
	client := NewVisionClient("", "http://unused")
	_, err := client.ExtractText(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrService)
}
