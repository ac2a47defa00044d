package testutil

import (
	"context"
	"strings"

	"github.com/billforge/billforge/internal/domain/tenant"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
)

// InMemoryTenantStore implements tenant.Repository
type InMemoryTenantStore struct {
	*InMemoryStore[*tenant.Tenant]
}

// NewInMemoryTenantStore creates a new in-memory tenant store
func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{
		InMemoryStore: NewInMemoryStore[*tenant.Tenant](),
	}
}

// Helper to copy tenant
func copyTenant(t *tenant.Tenant) *tenant.Tenant {
	if t == nil {
		return nil
	}

	copied := &tenant.Tenant{
		ID:              t.ID,
		Name:            t.Name,
		Plan:            t.Plan,
		BillingCycle:    t.BillingCycle,
		Amount:          t.Amount,
		Currency:        t.Currency,
		NextInvoiceDate: t.NextInvoiceDate,
		CreditBalance:   t.CreditBalance,
		BaseModel: types.BaseModel{
			TenantID:  t.TenantID,
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
			CreatedBy: t.CreatedBy,
			UpdatedBy: t.UpdatedBy,
		},
	}
	if t.ActiveDiscount != nil {
		d := *t.ActiveDiscount
		copied.ActiveDiscount = &d
	}
	return copied
}

// Seed stores a tenant, replacing any existing one with the same ID.
func (s *InMemoryTenantStore) Seed(ctx context.Context, t *tenant.Tenant) error {
	if t == nil {
		return ierr.NewError("tenant cannot be nil").
			WithHint("Tenant cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Create(ctx, t.ID, copyTenant(t)); err != nil {
		if ierr.Is(err, ierr.ErrAlreadyExists) {
			return s.InMemoryStore.Update(ctx, t.ID, copyTenant(t))
		}
		return err
	}
	return nil
}

func (s *InMemoryTenantStore) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Tenant with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"tenant_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyTenant(t), nil
}

func (s *InMemoryTenantStore) List(ctx context.Context, filter *types.TenantFilter) ([]*tenant.Tenant, error) {
	if filter == nil {
		filter = types.NewTenantFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	filterFn := func(ctx context.Context, t *tenant.Tenant, _ interface{}) bool {
		if t == nil {
			return false
		}
		if filter.NameContains != "" &&
			!strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.NameContains)) {
			return false
		}
		if filter.BillingCycle != nil && t.BillingCycle != *filter.BillingCycle {
			return false
		}
		return true
	}

	sortFn := func(a, b *tenant.Tenant) bool {
		return a.Name < b.Name
	}

	items, err := s.InMemoryStore.List(ctx, filter, filterFn, sortFn)
	if err != nil {
		return nil, err
	}

	offset := filter.GetOffset()
	limit := filter.GetLimit()
	if offset >= len(items) {
		return []*tenant.Tenant{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	result := make([]*tenant.Tenant, 0, end-offset)
	for _, t := range items[offset:end] {
		result = append(result, copyTenant(t))
	}
	return result, nil
}
