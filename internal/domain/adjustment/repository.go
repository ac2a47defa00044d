package adjustment

import "context"

// Repository is the billing mutation boundary. Implementations perform the
// actual state change against the billing system; from the engine's point of
// view a request is atomic: either fully applied or not applied at all.
//
// ApplyDiscount supersedes any discount already active on the tenant. The
// replaced descriptor is recorded by the caller in the audit trail.
type Repository interface {
	// ApplyDiscount applies a fully validated discount request.
	ApplyDiscount(ctx context.Context, req *DiscountRequest) error

	// IssueCredit issues a fully validated credit request.
	IssueCredit(ctx context.Context, req *CreditRequest) error
}
