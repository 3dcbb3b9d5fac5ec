// Package apierror models application-level failures of the SIVEC backend.
// Any response that is not a successful envelope — transport worked, but the
// server said no — surfaces as an *APIError so callers can show the server's
// own message instead of a generic one.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError carries the HTTP status and the message field of a
// {success:false} envelope.
type APIError struct {
	Status  int
	Message string
}

func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("el servidor respondio con estado %d", e.Status)
}

// EsAutorizacion reports whether err is a 401-class rejection. By the time a
// caller sees one, the client layer has already wiped local credentials.
func EsAutorizacion(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
