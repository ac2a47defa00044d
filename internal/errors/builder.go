package errors

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder assembles an error with a user-facing hint and reportable
// details before marking it with one of the package marker errors. The
// terminal call is always Mark, which finalizes the chain:
//
//	ierr.NewError("amount must be positive").
//		WithHint("Credit amount must be greater than zero").
//		WithReportableDetails(map[string]interface{}{"amount": amount}).
//		Mark(ierr.ErrValidation)
type ErrorBuilder struct {
	err     error
	hint    string
	details map[string]interface{}
}

// NewError starts a builder from a new error message.
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.NewWithDepth(1, message)}
}

// NewErrorf starts a builder from a formatted error message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{err: errors.NewWithDepthf(1, format, args...)}
}

// WithError starts a builder wrapping an existing error.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithHint attaches a human-readable hint surfaced verbatim to the user.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hint = hint
	return b
}

// WithHintf attaches a formatted hint.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details safe to log and report.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.details = details
	return b
}

// Mark finalizes the error with the given marker.
func (b *ErrorBuilder) Mark(mark error) error {
	err := b.err
	if err == nil {
		err = errors.NewWithDepth(1, "unknown error")
	}
	if b.hint != "" {
		err = errors.WithHint(err, b.hint)
	}
	if len(b.details) > 0 {
		keys := make([]string, 0, len(b.details))
		for k := range b.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			err = errors.WithDetailf(err, "%s: %v", k, b.details[k])
		}
	}
	return errors.Mark(err, mark)
}
