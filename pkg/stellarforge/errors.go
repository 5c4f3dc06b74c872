package stellarforge

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed registration. The set is closed.
type ErrorKind int

const (
	// KindNone is reported by KindOf for a nil error.
	KindNone ErrorKind = iota
	// KindAuthentication: the API key was missing or rejected (401).
	KindAuthentication
	// KindInvalidCoordinates: the request failed validation (400).
	KindInvalidCoordinates
	// KindServiceUnavailable: the service failed (5xx). Safe to retry.
	KindServiceUnavailable
	// KindUnexpected: any other status, or the request never completed.
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAuthentication:
		return "authentication"
	case KindInvalidCoordinates:
		return "invalid_coordinates"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrAuthentication     = errors.New("stellarforge: authentication failed")
	ErrInvalidCoordinates = errors.New("stellarforge: invalid coordinates")
	ErrServiceUnavailable = errors.New("stellarforge: service unavailable")
	ErrUnexpected         = errors.New("stellarforge: unexpected response")
)

const (
	defaultAuthMessage        = "Authentication failed."
	defaultInvalidMessage     = "Invalid input data."
	serviceUnavailableMessage = "API server error."
)

// Error is returned by Client.Register for every non-201 outcome.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	// Body is the raw response payload, kept for unexpected statuses.
	Body []byte
	// Err is the transport failure, if the request never got a response.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("stellarforge %s: %s: %v", e.Kind, e.Message, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("stellarforge %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("stellarforge %s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the transport failure, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Retryable reports whether retrying the same request may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindServiceUnavailable
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindAuthentication:
		return ErrAuthentication
	case KindInvalidCoordinates:
		return ErrInvalidCoordinates
	case KindServiceUnavailable:
		return ErrServiceUnavailable
	case KindUnexpected:
		return ErrUnexpected
	default:
		return nil
	}
}

// KindOf returns the kind of err: KindNone for nil, KindUnexpected for errors
// that did not come from this package.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var sfErr *Error
	if errors.As(err, &sfErr) {
		return sfErr.Kind
	}
	return KindUnexpected
}

// IsRetryable reports whether err is a retryable *Error.
func IsRetryable(err error) bool {
	var sfErr *Error
	return errors.As(err, &sfErr) && sfErr.Retryable()
}
