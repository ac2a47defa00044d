package billing

import (
	"time"

	"github.com/billforge/billforge/internal/domain/adjustment"
	"github.com/billforge/billforge/internal/domain/tenant"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// DiscountComputation is the projected financial impact of a discount
// request on a tenant's billed amount. All amounts are rounded to the
// tenant currency's precision at the source.
type DiscountComputation struct {
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`

	// EffectiveDate is when the discount takes effect. Nil means immediate.
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
}

// Immediate reports whether the discount takes effect immediately rather
// than on a future invoice date.
func (c DiscountComputation) Immediate() bool {
	return c.EffectiveDate == nil
}

// CalculateDiscount projects the impact of a discount request. The
// computation is pure and idempotent; the wizard recomputes it every time
// inputs change rather than caching results.
func CalculateDiscount(req *adjustment.DiscountRequest, t *tenant.Tenant) DiscountComputation {
	original := t.Amount

	var discountAmount decimal.Decimal
	if req.Type == types.DiscountTypePercentage {
		discountAmount = req.Value.Mul(original).Div(decimal.NewFromInt(100))
	} else {
		discountAmount = req.Value
	}
	discountAmount = types.RoundToCurrencyPrecision(discountAmount, t.Currency)

	finalAmount := original.Sub(discountAmount)
	if finalAmount.IsNegative() {
		finalAmount = decimal.Zero
	}
	finalAmount = types.RoundToCurrencyPrecision(finalAmount, t.Currency)

	var effectiveDate *time.Time
	if req.AppliesTo == types.DiscountAppliesToNextInvoice {
		d := t.NextInvoiceDate
		effectiveDate = &d
	}

	return DiscountComputation{
		OriginalAmount: original,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		EffectiveDate:  effectiveDate,
	}
}
