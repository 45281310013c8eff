package httpx

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

var devMode atomic.Bool

// SetDevMode toggles inclusion of internal error detail in 500 responses.
func SetDevMode(enabled bool) {
	devMode.Store(enabled)
}

// DevMode reports whether internal error detail is exposed.
func DevMode() bool {
	return devMode.Load()
}

type errorBody struct {
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends a `{"message": ...}` body with the given status code.
func Message(w http.ResponseWriter, status int, message string, missing []string) {
	JSON(w, status, errorBody{Message: message, Missing: missing})
}

// DecodeJSON decodes the JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
