// internal/errors/errors.go
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Domain error kinds. Services return these; the HTTP layer maps them to
// status codes via HTTPStatus.
var (
	// ErrUnauthenticated means no verified caller identity was supplied.
	ErrUnauthenticated = errors.New("missing caller identity")

	// ErrUserNotFound means the target user id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfReference means actor id equals target id on an operation
	// that forbids it.
	ErrSelfReference = errors.New("cannot target yourself")

	// ErrInvalidArgument covers malformed input (unknown action, bad id).
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidArgument wraps ErrInvalidArgument with a message.
func InvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// IsDuplicate reports whether err is a store uniqueness-constraint
// violation. The interaction paths absorb these as idempotent success
// (duplicate like, duplicate favorite, duplicate match from a race) —
// a duplicate here is a design expectation, never a failure.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// HTTPStatus converts service/infra errors into an HTTP status code.
// Keeps the handler layer clean by centralizing error mapping.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, ErrUserNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrSelfReference), errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest

	case errors.Is(err, context.DeadlineExceeded):
		// store unreachable or timed out — safe to retry
		return http.StatusServiceUnavailable

	case errors.Is(err, context.Canceled):
		// client went away
		return 499

	default:
		return http.StatusInternalServerError
	}
}
