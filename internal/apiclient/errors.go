package apiclient

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success HTTP status. Detail is the server's free-text
// "detail" field and may be empty.
type ServerError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.StatusCode, e.Detail)
}

// MalformedResponseError is a response body that could not be decoded or did
// not match the expected shape.
type MalformedResponseError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response (status %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Detail returns the server-supplied detail carried by err, if any.
func Detail(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Kind classifies err for logs and metrics.
func Kind(err error) string {
	var (
		ne *NetworkError
		se *ServerError
		me *MalformedResponseError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ne):
		return "network_error"
	case errors.As(err, &se):
		return "server_error"
	case errors.As(err, &me):
		return "malformed_response"
	default:
		return "error"
	}
}
