package testutil

import (
	"context"
	"sync"

	"github.com/billforge/billforge/internal/domain/auditlog"
	ierr "github.com/billforge/billforge/internal/errors"
)

// InMemoryAuditLogStore implements auditlog.Repository
type InMemoryAuditLogStore struct {
	mu      sync.Mutex
	entries []*auditlog.Entry

	failWith error
}

// NewInMemoryAuditLogStore creates a new in-memory audit log store
func NewInMemoryAuditLogStore() *InMemoryAuditLogStore {
	return &InMemoryAuditLogStore{}
}

// FailWith makes every subsequent Record call fail with the given error.
func (s *InMemoryAuditLogStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *InMemoryAuditLogStore) Record(ctx context.Context, entry *auditlog.Entry) error {
	if entry == nil {
		return ierr.NewError("audit entry cannot be nil").
			WithHint("Audit entry cannot be nil").
			Mark(ierr.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns the recorded entries in order.
func (s *InMemoryAuditLogStore) Entries() []*auditlog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*auditlog.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
