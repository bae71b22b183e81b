// Package response writes the JSON envelope the catalog API speaks.
//
// Every response carries a human-readable "message"; successful reads and
// creates additionally carry "data". Validation failures carry a field →
// message map under "errors".
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with message and data.
func Success(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, envelope{Message: message, Data: data})
}

// Message sends a 200 carrying only a confirmation message.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, envelope{Message: message})
}

// Error sends a JSON error response with a static message and no internals.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Message: message})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Message: "validation failed",
		Errors:  errs,
	})
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// PayloadTooLarge sends a 413 for oversized uploads.
func PayloadTooLarge(w http.ResponseWriter, message string) {
	Error(w, http.StatusRequestEntityTooLarge, message)
}
