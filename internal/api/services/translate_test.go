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

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/language/translate/v2", r.URL.Path)

		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Q, 1)
		assert.Equal(t, "hello", req.Q[0])
		assert.Equal(t, "fr", req.Target)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"translations": []map[string]string{{"translatedText": "bonjour"}},
			},
		})
	}))
	defer srv.Close()

	client := NewTranslateClient("test-key", srv.URL)
	out, err := client.Translate(context.Background(), "hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, "bonjour", out)
}

func TestTranslate_DefaultTargetLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "es", req.Target)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"translations": []map[string]string{{"translatedText": "hola"}},
			},
		})
	}))
	defer srv.Close()

	client := NewTranslateClient("test-key", srv.URL)
	out, err := client.Translate(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "hola", out)
}

func TestTranslate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "invalid target"},
		})
	}))
	defer srv.Close()

	client := NewTranslateClient("test-key", srv.URL)
	_, err := client.Translate(context.Background(), "hello", "zz")
	assert.ErrorIs(t, err, ErrService)
}

func TestTranslate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewTranslateClient("test-key", srv.URL)
	_, err := client.Translate(context.Background(), "hello", "fr")
	assert.ErrorIs(t, err, ErrService)
}
