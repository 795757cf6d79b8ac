package track

import (
	"errors"
	"fmt"
	"net/http"

	"tracker/internal/api"
)

type ErrorKind string

const (
	// ErrorAuth covers rejected credentials or an expired token.
	ErrorAuth ErrorKind = "auth"
	// ErrorNotFound covers operations referencing an entry that does not
	// exist or is not running.
	ErrorNotFound ErrorKind = "not_found"
	// ErrorTransport covers network failures and malformed top-level
	// responses. Safe to retry; no local state was changed.
	ErrorTransport ErrorKind = "transport"
	// ErrorPrecondition covers operations invoked without an
	// authenticated session.
	ErrorPrecondition ErrorKind = "precondition"
)

type TrackError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *TrackError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *TrackError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf classifies err, returning an empty kind for nil or foreign errors.
func KindOf(err error) ErrorKind {
	var trackErr *TrackError
	if errors.As(err, &trackErr) {
		return trackErr.Kind
	}
	return ""
}

func authError(message string, err error) *TrackError {
	return &TrackError{Kind: ErrorAuth, Message: message, Err: err}
}

func notFoundError(message string, err error) *TrackError {
	return &TrackError{Kind: ErrorNotFound, Message: message, Err: err}
}

func transportError(message string, err error) *TrackError {
	return &TrackError{Kind: ErrorTransport, Message: message, Err: err}
}

func preconditionError(message string) *TrackError {
	return &TrackError{Kind: ErrorPrecondition, Message: message}
}

// requestError maps a transport-layer failure onto the taxonomy: rejected
// credentials become auth failures, everything else is retryable transport.
func requestError(message string, err error) *TrackError {
	if apiErr := api.AsAPIError(err); apiErr != nil {
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			return authError(message, err)
		}
	}
	return transportError(message, err)
}
