package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure causes surface directly in the UI, hence the sentence casing.
var (
	ErrNoToken   = errors.New("No token found. Please log in again.")
	ErrNullItems = errors.New("Items or response body is null.")
	ErrNullBody  = errors.New("Response body is null.")
)

// StatusError is a response that arrived but was not a success. Message
// is the server's {message} field when one was decodable, otherwise the
// standard status text.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.Code)
}
