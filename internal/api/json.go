// ABOUTME: JSON response helpers and the client-facing message envelope
// ABOUTME: Every error is reported as {"message": "..."} with an HTTP status

package api

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the envelope for status and error messages. The
// extension client reads the "message" field verbatim.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage writes a MessageResponse with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
