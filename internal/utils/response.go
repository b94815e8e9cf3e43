package utils

import (
	"encoding/json"
	"net/http"
)

// Payload is the JSON envelope every endpoint answers with. Data is omitted
// when the response carries only the outcome flag and message.
type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSONResponse writes the envelope with the given status code. Encoding
// errors are dropped; the status line is already on the wire.
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
