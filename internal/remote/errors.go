package remote

import (
	"fmt"
	"strconv"
	"time"
)

// NetworkError is a connectivity failure or a request that lost the race against its timeout.
type NetworkError struct {
	Op      string
	Timeout bool
	After   time.Duration
	Err     error
}

// Error returns the error message.
func (e *NetworkError) Error() string {
	if e.Timeout {
		secs := e.After.Seconds()
		unit := "seconds"
		if secs == 1 {
			unit = "second"
		}
		return fmt.Sprintf("Request took too long! Timeout after %s %s", strconv.FormatFloat(secs, 'f', -1, 64), unit)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response. Message is the server's own message field.
type APIError struct {
	Message string
	Status  int
}

// Error returns the error message.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}
