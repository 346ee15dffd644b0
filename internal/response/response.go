// Package response writes JSON API responses in one envelope shape.
package response

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// JSONResponse is the common response envelope for all API endpoints.
type JSONResponse struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// ErrorBody holds details about an API error.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Data carries the resource the error is about, if any.
	Data any `json:"data,omitempty"`
}

// RespondJSON writes a successful JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, JSONResponse{
		Success:   true,
		Data:      payload,
		Timestamp: now(),
	})
}

// RespondError writes an error JSON response with the given status code and message.
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondErrorWithData(w, status, msg, nil)
}

// RespondErrorWithData is RespondError with the affected resource attached,
// e.g. the journal entry of a request the gateway rejected.
func RespondErrorWithData(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, JSONResponse{
		Success: false,
		Error: &ErrorBody{
			Code:    status,
			Message: msg,
			Data:    data,
		},
		Timestamp: now(),
	})
}

func now() string {
	return time.Now().Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] failed to write response: %v", err)
	}
}
