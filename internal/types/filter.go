package types

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/samber/lo"
)

const (
	defaultFilterLimit = 50
	maxFilterLimit     = 1000
)

// QueryFilter carries pagination and ordering parameters shared by all
// list filters.
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit"`
	Offset *int    `json:"offset,omitempty" form:"offset"`
	Sort   *string `json:"sort,omitempty" form:"sort"`
	Order  *string `json:"order,omitempty" form:"order"`
}

// NewDefaultQueryFilter returns a filter with default pagination.
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(defaultFilterLimit),
		Offset: lo.ToPtr(0),
	}
}

// NewNoLimitQueryFilter returns a filter without a pagination cap.
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Offset: lo.ToPtr(0),
	}
}

// Validate validates pagination bounds.
func (f *QueryFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > maxFilterLimit) {
		return ierr.NewError("invalid limit").
			WithHintf("Limit must be between 1 and %d", maxFilterLimit).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("invalid offset").
			WithHint("Offset must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit returns the effective limit.
func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return defaultFilterLimit
	}
	return *f.Limit
}

// GetOffset returns the effective offset.
func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// TenantFilter filters tenant billing summary listings.
type TenantFilter struct {
	*QueryFilter
	NameContains string        `json:"name_contains,omitempty" form:"name_contains"`
	BillingCycle *BillingCycle `json:"billing_cycle,omitempty" form:"billing_cycle"`
}

// NewTenantFilter creates a tenant filter with default pagination.
func NewTenantFilter() *TenantFilter {
	return &TenantFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// Validate validates the tenant filter.
func (f *TenantFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.QueryFilter == nil {
		f.QueryFilter = NewDefaultQueryFilter()
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.BillingCycle != nil {
		return f.BillingCycle.Validate()
	}
	return nil
}
