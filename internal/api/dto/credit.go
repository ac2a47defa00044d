package dto

import (
	"time"

	"github.com/billforge/billforge/internal/domain/adjustment"
	"github.com/billforge/billforge/internal/domain/billing"
	"github.com/billforge/billforge/internal/domain/tenant"
	"github.com/billforge/billforge/internal/types"
	"github.com/billforge/billforge/internal/validator"
	"github.com/shopspring/decimal"
)

// UpdateCreditDraftRequest is a partial update of the credit draft. Only
// non-nil fields are applied.
type UpdateCreditDraftRequest struct {
	Name        *string                `json:"name,omitempty"`
	Amount      *decimal.Decimal       `json:"amount,omitempty"`
	UsageRule   *types.CreditUsageRule `json:"usage_rule,omitempty"`
	HasExpiry   *bool                  `json:"has_expiry,omitempty"`
	ExpiryDate  *time.Time             `json:"expiry_date,omitempty"`
	ReasonCode  *types.ReasonCode      `json:"reason_code,omitempty"`
	ReasonNotes *string                `json:"reason_notes,omitempty"`
}

// Validate checks that every provided field carries a well-formed value.
func (r *UpdateCreditDraftRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.UsageRule != nil {
		if err := r.UsageRule.Validate(); err != nil {
			return err
		}
	}
	if r.ReasonCode != nil {
		if err := r.ReasonCode.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the provided fields onto the draft.
func (r *UpdateCreditDraftRequest) Apply(c *adjustment.CreditRequest) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Amount != nil {
		c.Amount = *r.Amount
	}
	if r.UsageRule != nil {
		c.UsageRule = *r.UsageRule
	}
	if r.HasExpiry != nil {
		c.HasExpiry = *r.HasExpiry
	}
	if r.ExpiryDate != nil {
		c.ExpiryDate = r.ExpiryDate
	}
	if r.ReasonCode != nil {
		c.ReasonCode = *r.ReasonCode
	}
	if r.ReasonNotes != nil {
		c.ReasonNotes = *r.ReasonNotes
	}
}

// CreditPreviewResponse is the balance projection shown before confirming a
// credit issue.
type CreditPreviewResponse struct {
	TenantID       string                `json:"tenant_id"`
	TenantName     string                `json:"tenant_name"`
	Currency       string                `json:"currency"`
	UsageRule      types.CreditUsageRule `json:"usage_rule"`
	CurrentBalance decimal.Decimal       `json:"current_balance"`
	CreditAmount   decimal.Decimal       `json:"credit_amount"`
	NewBalance     decimal.Decimal       `json:"new_balance"`
	WillApply      decimal.Decimal       `json:"will_apply"`
	Remaining      decimal.Decimal       `json:"remaining"`

	// LargeCredit is an advisory only; it never blocks progression.
	LargeCredit bool `json:"large_credit"`
}

// NewCreditPreviewResponse builds the preview response from a projection.
func NewCreditPreviewResponse(t *tenant.Tenant, rule types.CreditUsageRule, proj billing.CreditProjection) *CreditPreviewResponse {
	return &CreditPreviewResponse{
		TenantID:       t.ID,
		TenantName:     t.Name,
		Currency:       t.Currency,
		UsageRule:      rule,
		CurrentBalance: proj.CurrentBalance,
		CreditAmount:   proj.CreditAmount,
		NewBalance:     proj.NewBalance,
		WillApply:      proj.WillApply,
		Remaining:      proj.Remaining,
		LargeCredit:    proj.LargeCredit,
	}
}
