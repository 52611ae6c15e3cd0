package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Error is returned for any non 2xx response of the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// where the backend puts a human readable message, depending on the failure.
var messagePaths = []string{
	"$.message",
	"$.error",
	"$.errors[0].message",
}

// newError extracts the server message from an error body. It falls back to
// the raw body, then to the status text.
func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Message: http.StatusText(status)}

	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" {
			e.Message = text
		}
		return e
	}
	for _, path := range messagePaths {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		if s, ok := jval.(string); ok && s != "" {
			e.Message = s
			return e
		}
	}
	return e
}

// IsStatus reports whether err is an *Error with that status code.
func IsStatus(err error, code int) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == code
}

// IsUnauthorized reports whether the backend rejected the session token.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsNotFound reports whether the backend could not find the resource.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }
