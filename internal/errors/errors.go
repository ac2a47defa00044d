package errors

import (
	"github.com/cockroachdb/errors"
)

// Marker errors used to classify failures across the engine. Errors created
// through this package carry exactly one mark so callers can branch with
// errors.Is without depending on error strings.
var (
	// ErrValidation marks locally recoverable input failures. These never
	// escape the wizard as anything other than a return value.
	ErrValidation = errors.New("validation_error")

	// ErrNotFound marks lookups that returned no result.
	ErrNotFound = errors.New("not_found")

	// ErrAlreadyExists marks uniqueness conflicts.
	ErrAlreadyExists = errors.New("already_exists")

	// ErrInvalidOperation marks commands rejected by the current state.
	ErrInvalidOperation = errors.New("invalid_operation")

	// ErrIntegration marks failures reported by an external boundary,
	// e.g. the billing mutation service. Recoverable by user retry.
	ErrIntegration = errors.New("integration_error")

	// ErrTimeout marks boundary calls that exceeded their deadline.
	ErrTimeout = errors.New("timeout_error")

	// ErrSystem marks structural misconfiguration. Fatal, no retry path.
	ErrSystem = errors.New("system_error")

	// ErrDatabase marks storage-layer failures.
	ErrDatabase = errors.New("database_error")

	// ErrInternal marks unexpected internal failures.
	ErrInternal = errors.New("internal_error")
)

// Is reports whether err carries the given mark.
func Is(err, mark error) bool {
	return errors.Is(err, mark)
}

// As delegates to the underlying errors library.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsIntegration(err error) bool {
	return errors.Is(err, ErrIntegration)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsSystem(err error) bool {
	return errors.Is(err, ErrSystem)
}

// Hint returns the first user-facing hint attached to err, or the error
// message itself when no hint was attached. The wizard surfaces this value
// verbatim as the inline step error.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}
