package tenant

import (
	"context"

	"github.com/billforge/billforge/internal/types"
)

// Repository is the read-only boundary to the tenant billing read side.
// The adjustment engine only ever queries it; all mutation goes through the
// billing mutation boundary.
type Repository interface {
	// Get retrieves a tenant billing summary by ID.
	Get(ctx context.Context, id string) (*Tenant, error)

	// List retrieves tenant billing summaries matching the filter.
	List(ctx context.Context, filter *types.TenantFilter) ([]*Tenant, error)
}
