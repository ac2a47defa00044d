package types

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/shopspring/decimal"
)

// DefaultLargeCreditThreshold is the amount at or above which the credit
// wizard raises a non-blocking advisory. Overridable via configuration.
var DefaultLargeCreditThreshold = decimal.NewFromInt(1000)

// CreditUsageRule governs how an issued credit is drawn down against
// future invoices.
type CreditUsageRule string

const (
	// CreditUsageRuleAutoNext applies the new credit against the next
	// invoice only; any remainder stays on the balance.
	CreditUsageRuleAutoNext CreditUsageRule = "auto_next"
	// CreditUsageRuleAutoExhaust applies the full balance against
	// successive invoices until exhausted.
	CreditUsageRuleAutoExhaust CreditUsageRule = "auto_exhaust"
	// CreditUsageRuleManual leaves the credit on the balance until an
	// operator applies it explicitly.
	CreditUsageRuleManual CreditUsageRule = "manual"
)

// Validate validates the usage rule.
func (r CreditUsageRule) Validate() error {
	switch r {
	case CreditUsageRuleAutoNext, CreditUsageRuleAutoExhaust, CreditUsageRuleManual:
		return nil
	default:
		return ierr.NewError("invalid credit usage rule").
			WithHint("Usage rule must be one of: auto_next, auto_exhaust, manual").
			WithReportableDetails(map[string]interface{}{
				"usage_rule": r,
			}).
			Mark(ierr.ErrValidation)
	}
}
