package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/billforge/billforge/internal/domain/adjustment"
	ierr "github.com/billforge/billforge/internal/errors"
)

// InMemoryBillingStore implements adjustment.Repository against the
// in-memory tenant store. Commits mutate the seeded tenants the way the
// real billing system would: a discount replaces the active one, a credit
// adds to the balance.
//
// Tests can inject a forced failure or artificial latency to exercise the
// failure and timeout paths of the commit flow.
type InMemoryBillingStore struct {
	mu      sync.Mutex
	tenants *InMemoryTenantStore

	discounts []*adjustment.DiscountRequest
	credits   []*adjustment.CreditRequest
	seenKeys  map[string]bool

	failWith error
	latency  time.Duration
}

// NewInMemoryBillingStore creates a billing store backed by the given
// tenant store.
func NewInMemoryBillingStore(tenants *InMemoryTenantStore) *InMemoryBillingStore {
	return &InMemoryBillingStore{
		tenants:  tenants,
		seenKeys: make(map[string]bool),
	}
}

// FailWith makes every subsequent commit fail with the given error.
// Pass nil to restore normal behavior.
func (s *InMemoryBillingStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// WithLatency delays every subsequent commit by d, honoring context
// cancellation during the wait.
func (s *InMemoryBillingStore) WithLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Discounts returns the discount requests applied so far.
func (s *InMemoryBillingStore) Discounts() []*adjustment.DiscountRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*adjustment.DiscountRequest, len(s.discounts))
	copy(out, s.discounts)
	return out
}

// Credits returns the credit requests applied so far.
func (s *InMemoryBillingStore) Credits() []*adjustment.CreditRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*adjustment.CreditRequest, len(s.credits))
	copy(out, s.credits)
	return out
}

func (s *InMemoryBillingStore) gate(ctx context.Context, idempotencyKey string) error {
	s.mu.Lock()
	latency := s.latency
	failWith := s.failWith
	s.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if failWith != nil {
		return failWith
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idempotencyKey != "" && s.seenKeys[idempotencyKey] {
		return ierr.NewError("duplicate commit").
			WithHint("This adjustment was already applied").
			WithReportableDetails(map[string]interface{}{
				"idempotency_key": idempotencyKey,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	if idempotencyKey != "" {
		s.seenKeys[idempotencyKey] = true
	}
	return nil
}

func (s *InMemoryBillingStore) ApplyDiscount(ctx context.Context, req *adjustment.DiscountRequest) error {
	if req == nil {
		return ierr.NewError("discount request cannot be nil").
			WithHint("Discount request cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.gate(ctx, req.IdempotencyKey); err != nil {
		return err
	}

	t, err := s.tenants.Get(ctx, req.TenantID)
	if err != nil {
		return err
	}
	t.ActiveDiscount = req.Descriptor()
	if err := s.tenants.Update(ctx, t.ID, t); err != nil {
		return err
	}

	s.mu.Lock()
	s.discounts = append(s.discounts, req)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryBillingStore) IssueCredit(ctx context.Context, req *adjustment.CreditRequest) error {
	if req == nil {
		return ierr.NewError("credit request cannot be nil").
			WithHint("Credit request cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.gate(ctx, req.IdempotencyKey); err != nil {
		return err
	}

	t, err := s.tenants.Get(ctx, req.TenantID)
	if err != nil {
		return err
	}
	t.CreditBalance = t.CreditBalance.Add(req.Amount)
	if err := s.tenants.Update(ctx, t.ID, t); err != nil {
		return err
	}

	s.mu.Lock()
	s.credits = append(s.credits, req)
	s.mu.Unlock()
	return nil
}
