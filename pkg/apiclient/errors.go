package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// maxErrorBody is how many bytes of a response body Error includes.
const maxErrorBody = 200

// HTTPStatusError is a 4xx/5xx response. Body is the raw response body.
type HTTPStatusError struct {
	Method string
	URL    string
	Status int
	Body   []byte
}

func (e *HTTPStatusError) Error() string {
	body := string(e.Body)
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.Status, http.StatusText(e.Status), body)
}

// ParseError means a success response carried a body that is not valid JSON
// for the expected shape.
type ParseError struct {
	Method string
	URL    string
	Body   []byte
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: malformed response: %v", e.Method, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}

func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsUnauthorized reports an expired or missing credential. There is no
// automatic re-authentication; callers surface it like any other failure.
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }
