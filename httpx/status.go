package httpx

import (
	"net/http"

	"github.com/adeilh/go-rakh-status/httpx/statusclass"
)

const (
	StatusOK                  = http.StatusOK                  // Successful request
	StatusCreated             = http.StatusCreated             // Resource created
	StatusNoContent           = http.StatusNoContent           // Successful with no body
	StatusMovedPermanently    = http.StatusMovedPermanently    // Permanent redirect
	StatusBadRequest          = http.StatusBadRequest          // Validation or malformed input
	StatusUnauthorized        = http.StatusUnauthorized        // Missing or invalid authentication
	StatusForbidden           = http.StatusForbidden           // Authenticated but lacks permission
	StatusNotFound            = http.StatusNotFound            // Resource not found
	StatusConflict            = http.StatusConflict            // Uniqueness or version conflict
	StatusUnprocessableEntity = http.StatusUnprocessableEntity // Semantically invalid input
	StatusTooManyRequests     = http.StatusTooManyRequests     // Rate limiting or quotas
	StatusInternalError       = http.StatusInternalServerError // Unexpected server error
	StatusServiceUnavailable  = http.StatusServiceUnavailable  // Dependency failure or maintenance
)

// StatusClass is the class of an HTTP status code.
type StatusClass = statusclass.Class

// ClassOf returns the status class of code.
func ClassOf(code int) StatusClass { return statusclass.ClassOf(code) }

// ReasonPhrase returns the standard reason phrase for code, falling back to
// the default label of its status class for codes net/http does not know.
func ReasonPhrase(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return statusclass.ClassOf(code).Label()
}
