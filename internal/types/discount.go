package types

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/shopspring/decimal"
)

// MaxPercentageDiscount is the ceiling for percentage discounts. Anything
// above this requires a manual process outside the console.
var MaxPercentageDiscount = decimal.NewFromInt(50)

// DiscountType determines how a discount value is interpreted.
type DiscountType string

const (
	// DiscountTypePercentage discounts a percentage of the billed amount.
	DiscountTypePercentage DiscountType = "percentage"
	// DiscountTypeFixed discounts a fixed monetary amount.
	DiscountTypeFixed DiscountType = "fixed"
)

// Validate validates the discount type.
func (t DiscountType) Validate() error {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed:
		return nil
	default:
		return ierr.NewError("invalid discount type").
			WithHint("Discount type must be one of: percentage, fixed").
			WithReportableDetails(map[string]interface{}{
				"discount_type": t,
			}).
			Mark(ierr.ErrValidation)
	}
}

// DiscountAppliesTo determines the scope a discount is applied against.
type DiscountAppliesTo string

const (
	DiscountAppliesToSubscription DiscountAppliesTo = "subscription"
	DiscountAppliesToNextInvoice  DiscountAppliesTo = "next_invoice"
	DiscountAppliesToBillingCycle DiscountAppliesTo = "billing_cycle"
)

// Validate validates the applies-to scope.
func (a DiscountAppliesTo) Validate() error {
	switch a {
	case DiscountAppliesToSubscription, DiscountAppliesToNextInvoice, DiscountAppliesToBillingCycle:
		return nil
	default:
		return ierr.NewError("invalid discount scope").
			WithHint("Discount scope must be one of: subscription, next_invoice, billing_cycle").
			WithReportableDetails(map[string]interface{}{
				"applies_to": a,
			}).
			Mark(ierr.ErrValidation)
	}
}

// DiscountDuration determines how long a discount stays in effect.
type DiscountDuration string

const (
	DiscountDurationOneTime        DiscountDuration = "one_time"
	DiscountDurationFixedPeriod    DiscountDuration = "fixed_period"
	DiscountDurationUntilCancelled DiscountDuration = "until_cancelled"
)

// Validate validates the discount duration.
func (d DiscountDuration) Validate() error {
	switch d {
	case DiscountDurationOneTime, DiscountDurationFixedPeriod, DiscountDurationUntilCancelled:
		return nil
	default:
		return ierr.NewError("invalid discount duration").
			WithHint("Discount duration must be one of: one_time, fixed_period, until_cancelled").
			WithReportableDetails(map[string]interface{}{
				"duration": d,
			}).
			Mark(ierr.ErrValidation)
	}
}
