package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnknownRole        = errors.New("unknown role")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("record not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrCommitInFlight     = errors.New("commit already in flight")
	ErrNoWorkingCopy      = errors.New("no working copy loaded")
)

// FieldViolation is a single validation failure on a named field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	return v.Field + " " + v.Message
}

// ValidationError carries every violation found in one pass, so callers can
// surface them together instead of one at a time.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// RemoteError wraps a failure from the remote data collaborator. Retryable
// distinguishes transport and server faults (retry may help) from status-coded
// client faults (it will not).
type RemoteError struct {
	Op         string
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
