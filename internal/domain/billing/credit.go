package billing

import (
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// CreditProjection is the projected impact of issuing a credit on the
// tenant's balance and next invoice. For the automatic usage rules the
// invariant WillApply + Remaining == NewBalance always holds.
type CreditProjection struct {
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
	NewBalance     decimal.Decimal `json:"new_balance"`

	// WillApply is the portion of the balance projected to offset the
	// next invoice under the chosen usage rule.
	WillApply decimal.Decimal `json:"will_apply"`

	// Remaining is the balance left after the next invoice is offset.
	// Under the manual rule nothing applies automatically, so Remaining
	// is the issued amount itself.
	Remaining decimal.Decimal `json:"remaining"`

	// LargeCredit is a non-blocking advisory raised when the issued
	// amount meets the configured threshold. It never prevents
	// progression; the wizard only displays a warning.
	LargeCredit bool `json:"large_credit"`
}

// ProjectCredit computes the balance and next-invoice impact of issuing a
// credit. Credits are never issued as negative amounts, so the new balance
// is a monotonic increase over the current one. Pure and idempotent.
func ProjectCredit(
	currentBalance decimal.Decimal,
	creditAmount decimal.Decimal,
	nextInvoiceAmount decimal.Decimal,
	rule types.CreditUsageRule,
	currency string,
	largeCreditThreshold decimal.Decimal,
) CreditProjection {
	creditAmount = types.RoundToCurrencyPrecision(creditAmount, currency)
	newBalance := types.RoundToCurrencyPrecision(currentBalance.Add(creditAmount), currency)

	var willApply, remaining decimal.Decimal
	switch rule {
	case types.CreditUsageRuleAutoNext:
		// Only the newly issued credit offsets the next invoice; the
		// rest of the balance stays put.
		willApply = decimal.Min(creditAmount, nextInvoiceAmount)
		remaining = newBalance.Sub(willApply)
	case types.CreditUsageRuleAutoExhaust:
		willApply = decimal.Min(newBalance, nextInvoiceAmount)
		remaining = decimal.Max(decimal.Zero, newBalance.Sub(nextInvoiceAmount))
	case types.CreditUsageRuleManual:
		willApply = decimal.Zero
		remaining = creditAmount
	}

	return CreditProjection{
		CurrentBalance: currentBalance,
		CreditAmount:   creditAmount,
		NewBalance:     newBalance,
		WillApply:      types.RoundToCurrencyPrecision(willApply, currency),
		Remaining:      types.RoundToCurrencyPrecision(remaining, currency),
		LargeCredit:    largeCreditThreshold.IsPositive() && creditAmount.GreaterThanOrEqual(largeCreditThreshold),
	}
}
