package httputil

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dvanek/go-auth-api/internal/apperr"
	"github.com/dvanek/go-auth-api/internal/logging"
)

// HandlerFunc is an http.HandlerFunc that reports failures through its
// return value instead of writing divergent error bodies inline.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts a HandlerFunc to http.HandlerFunc, funneling every returned
// error through the shared error pipeline.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, err)
		}
	}
}

// errorBody is the uniform JSON error shape. Client errors (4xx) carry
// status "fail", server errors (5xx) carry status "error".
type errorBody struct {
	Status  string            `json:"status"`
	Error   apperr.Kind       `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// WriteError maps an error to its wire representation. Unclassified faults
// become a generic 500; the underlying cause is logged, never serialized.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)
	logger := logging.GetLoggerFromContext(r.Context())

	if appErr.Status >= 500 {
		logger.Error("request failed", "error", err.Error())
	} else {
		logger.Warn("request rejected", "kind", string(appErr.Kind), "status", appErr.Status)
	}

	status := "fail"
	if appErr.Status >= 500 {
		status = "error"
	}

	RespondJSON(w, errorBody{
		Status:  status,
		Error:   appErr.Kind,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	}, appErr.Status)
}
