package tenant

import (
	"fmt"
	"time"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// Tenant is the read-only billing summary of a billed customer account as
// seen by the adjustment wizards. It is supplied by the billing read side
// and never mutated by this engine.
type Tenant struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Plan            string              `json:"plan"`
	BillingCycle    types.BillingCycle  `json:"billing_cycle"`
	Amount          decimal.Decimal     `json:"amount"`
	Currency        string              `json:"currency"`
	NextInvoiceDate time.Time           `json:"next_invoice_date"`
	CreditBalance   decimal.Decimal     `json:"credit_balance"`
	ActiveDiscount  *DiscountDescriptor `json:"active_discount,omitempty"`
	types.BaseModel
}

// HasActiveDiscount reports whether the tenant currently has a discount in
// effect. A new discount replaces it rather than stacking.
func (t *Tenant) HasActiveDiscount() bool {
	return t != nil && t.ActiveDiscount != nil
}

// Validate checks the tenant summary is structurally complete enough for an
// adjustment wizard to operate on. A failure here is fatal for the wizard:
// the precondition is structural, not transient, so there is no retry path.
func (t *Tenant) Validate() error {
	if t == nil {
		return ierr.NewError("tenant is nil").
			WithHint("The referenced tenant could not be loaded").
			Mark(ierr.ErrSystem)
	}
	if t.ID == "" || t.Name == "" {
		return ierr.NewError("tenant is missing identity fields").
			WithHint("The tenant record is missing required billing fields").
			WithReportableDetails(map[string]interface{}{
				"tenant_id": t.ID,
			}).
			Mark(ierr.ErrSystem)
	}
	if t.Currency == "" || !t.Amount.IsPositive() {
		return ierr.NewError("tenant has no billable amount").
			WithHint("The tenant record is missing required billing fields").
			WithReportableDetails(map[string]interface{}{
				"tenant_id": t.ID,
				"amount":    t.Amount,
				"currency":  t.Currency,
			}).
			Mark(ierr.ErrSystem)
	}
	if t.NextInvoiceDate.IsZero() {
		return ierr.NewError("tenant has no next invoice date").
			WithHint("The tenant record is missing required billing fields").
			WithReportableDetails(map[string]interface{}{
				"tenant_id": t.ID,
			}).
			Mark(ierr.ErrSystem)
	}
	if err := t.BillingCycle.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("The tenant record is missing required billing fields").
			Mark(ierr.ErrSystem)
	}
	return nil
}

// DiscountDescriptor summarizes a discount in effect on a tenant. It is the
// value recorded as previous/new in audit entries when a discount is
// applied or replaced.
type DiscountDescriptor struct {
	Name      string                  `json:"name"`
	Type      types.DiscountType      `json:"type"`
	Value     decimal.Decimal         `json:"value"`
	AppliesTo types.DiscountAppliesTo `json:"applies_to"`
	Duration  types.DiscountDuration  `json:"duration"`
	StartDate *time.Time              `json:"start_date,omitempty"`
	EndDate   *time.Time              `json:"end_date,omitempty"`
}

// String renders a compact human-readable summary, e.g.
// "Loyalty reward: 20% off subscription (until_cancelled)".
func (d *DiscountDescriptor) String() string {
	if d == nil {
		return ""
	}
	value := d.Value.String()
	if d.Type == types.DiscountTypePercentage {
		value += "%"
	}
	return fmt.Sprintf("%s: %s off %s (%s)", d.Name, value, d.AppliesTo, d.Duration)
}
