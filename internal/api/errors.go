package api

import (
	"fmt"
)

// StatusError is returned when the server answers with a non-success status.
type StatusError struct {
	Op         string
	StatusCode int
	Detail     string
	Msg        string
}

func (e *StatusError) Error() string {
	if m := e.Message(); m != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, m)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Message returns the server-provided error text: detail first, then message.
// It is empty when the response body carried neither.
func (e *StatusError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Msg
}

// TransportError wraps network failures and undecodable response bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
