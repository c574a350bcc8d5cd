package symphony

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUserNotFound is returned by the user lookup calls when the pod
// reports no matching user. Lookups are single-shot; callers must not
// retry on this error.
var ErrUserNotFound = errors.New("user not found")

// StatusError is a non-2xx response from the platform. The body is kept
// for diagnostics; the platform puts its error envelope there.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("symphony: unexpected status %d: %s", e.Code, e.Body)
}

// Transient reports whether this is the documented retry case for
// datafeed creation and reads: the platform answers 400 when a feed id
// is stale or creation hit a recoverable condition.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusBadRequest
}

// IsTransient reports whether err is a recoverable datafeed failure
func IsTransient(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Transient()
}

// IsNotFound reports whether err is a user lookup miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
