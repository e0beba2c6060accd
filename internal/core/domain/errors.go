package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the remote API rejected the presented token
// (HTTP 401/403). For a refresh call this is conclusive: the session is
// dead. For invoice calls it means the access token needs refreshing.
var ErrUnauthorized = errors.New("unauthorized")

// RemoteError is a non-2xx response that carried a user-facing message,
// e.g. rejected credentials on login or a taken username on register.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote API returned %d: %s", e.StatusCode, e.Message)
}

// ValidationError is a 400 from the remote rejecting user-supplied data.
// The message is safe to show verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}
