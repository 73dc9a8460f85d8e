package helpers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope for all API responses.
// Message is always set. On error, Error carries the detail; Event or Events carry the payload on success.
// swagger:model APIResponse
type APIResponse struct {
	Message string `json:"message"`
	Event   any    `json:"event,omitempty"`
	Events  any    `json:"events,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes an envelope with the given message and error detail.
func WriteJSONError(w http.ResponseWriter, statusCode int, message, detail string) {
	WriteJSON(w, statusCode, APIResponse{Message: message, Error: detail})
}
