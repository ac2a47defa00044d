package auditlog

import "context"

// Repository is the audit log boundary the engine produces entries to.
type Repository interface {
	// Record stores an immutable audit entry for a committed mutation.
	Record(ctx context.Context, entry *Entry) error
}
