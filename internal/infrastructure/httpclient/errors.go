package httpclient

import (
	"fmt"
	"net/http"
)

// ResponseError is a completed call the backend answered with a non-2xx status.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Header     http.Header
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// RequestError is a call that was sent but never produced a readable response.
type RequestError struct {
	Method string
	URL    string
	Cause  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}
