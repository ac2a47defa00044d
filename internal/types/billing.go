package types

import (
	ierr "github.com/billforge/billforge/internal/errors"
)

// BillingCycle represents how often a tenant is invoiced.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// Validate validates the billing cycle.
func (c BillingCycle) Validate() error {
	switch c {
	case BillingCycleMonthly, BillingCycleYearly:
		return nil
	default:
		return ierr.NewError("invalid billing cycle").
			WithHint("Billing cycle must be one of: monthly, yearly").
			WithReportableDetails(map[string]interface{}{
				"billing_cycle": c,
			}).
			Mark(ierr.ErrValidation)
	}
}

// ReasonCode categorizes why an adjustment was made. Every committed
// adjustment carries one for the audit trail.
type ReasonCode string

const (
	ReasonCodeCustomerRetention ReasonCode = "customer_retention"
	ReasonCodeServiceIssue      ReasonCode = "service_issue"
	ReasonCodeBillingError      ReasonCode = "billing_error"
	ReasonCodePromotional       ReasonCode = "promotional"
	ReasonCodeGoodwill          ReasonCode = "goodwill"
	ReasonCodeOther             ReasonCode = "other"
)

// Validate validates the reason code.
func (r ReasonCode) Validate() error {
	switch r {
	case ReasonCodeCustomerRetention,
		ReasonCodeServiceIssue,
		ReasonCodeBillingError,
		ReasonCodePromotional,
		ReasonCodeGoodwill,
		ReasonCodeOther:
		return nil
	default:
		return ierr.NewError("invalid reason code").
			WithHint("Please select a valid reason").
			WithReportableDetails(map[string]interface{}{
				"reason_code": r,
			}).
			Mark(ierr.ErrValidation)
	}
}
