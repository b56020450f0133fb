package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// Machine-readable error codes sent next to the message.
const (
	CodeValidationFailed = "validation_failed"
	CodeInvalidJSON      = "invalid_json"
	CodeUnauthenticated  = "unauthenticated"
	CodeUserNotFound     = "user_not_found"
	CodeNotFound         = "not_found"
	CodeInvalidSignature = "invalid_signature"
	CodeInternal         = "internal_error"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// RespondJSON writes data with the given status code.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message}, statusCode)
}

func RespondErrorWithCode(w http.ResponseWriter, message, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// Unauthenticated is shared by every handler that needs a session.
func Unauthenticated(w http.ResponseWriter) {
	RespondErrorWithCode(w, "unauthorized", CodeUnauthenticated, http.StatusUnauthorized)
}
