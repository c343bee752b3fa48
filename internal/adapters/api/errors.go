package api

import (
	"fmt"
	"net/http"
)

// CallError is a remote call that came back with a non-success status.
type CallError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *CallError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}
