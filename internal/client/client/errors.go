package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("store unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkError reports a failed store call: either the request never got a
// response (StatusCode is 0) or the store answered with a non-2xx status.
// Err is one of the sentinels above, possibly joined with the cause.
type NetworkError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
