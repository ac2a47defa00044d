package dto

import (
	"time"

	"github.com/billforge/billforge/internal/domain/adjustment"
	"github.com/billforge/billforge/internal/domain/billing"
	"github.com/billforge/billforge/internal/domain/tenant"
	"github.com/billforge/billforge/internal/validator"
	"github.com/shopspring/decimal"

	"github.com/billforge/billforge/internal/types"
)

// UpdateDiscountDraftRequest is a partial update of the discount draft.
// Only non-nil fields are applied, so a single field edit in the UI maps to
// a request with exactly one field set.
type UpdateDiscountDraftRequest struct {
	Name        *string                  `json:"name,omitempty"`
	Type        *types.DiscountType      `json:"type,omitempty"`
	Value       *decimal.Decimal         `json:"value,omitempty"`
	AppliesTo   *types.DiscountAppliesTo `json:"applies_to,omitempty"`
	Duration    *types.DiscountDuration  `json:"duration,omitempty"`
	StartDate   *time.Time               `json:"start_date,omitempty"`
	EndDate     *time.Time               `json:"end_date,omitempty"`
	ReasonCode  *types.ReasonCode        `json:"reason_code,omitempty"`
	ReasonNotes *string                  `json:"reason_notes,omitempty"`
}

// Validate checks that every provided field carries a well-formed value.
// Cross-field invariants are enforced by the step rules, not here; a draft
// is allowed to be inconsistent mid-edit.
func (r *UpdateDiscountDraftRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Type != nil {
		if err := r.Type.Validate(); err != nil {
			return err
		}
	}
	if r.AppliesTo != nil {
		if err := r.AppliesTo.Validate(); err != nil {
			return err
		}
	}
	if r.Duration != nil {
		if err := r.Duration.Validate(); err != nil {
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
func (r *UpdateDiscountDraftRequest) Apply(d *adjustment.DiscountRequest) {
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.Type != nil {
		d.Type = *r.Type
	}
	if r.Value != nil {
		d.Value = *r.Value
	}
	if r.AppliesTo != nil {
		d.AppliesTo = *r.AppliesTo
	}
	if r.Duration != nil {
		d.Duration = *r.Duration
	}
	if r.StartDate != nil {
		d.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		d.EndDate = r.EndDate
	}
	if r.ReasonCode != nil {
		d.ReasonCode = *r.ReasonCode
	}
	if r.ReasonNotes != nil {
		d.ReasonNotes = *r.ReasonNotes
	}
}

// DiscountPreviewResponse is the financial projection shown on the impact
// preview step before the operator confirms.
type DiscountPreviewResponse struct {
	TenantID       string          `json:"tenant_id"`
	TenantName     string          `json:"tenant_name"`
	Currency       string          `json:"currency"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`

	// EffectiveDate is an ISO date, or "immediate" when the discount
	// takes effect right away.
	EffectiveDate string `json:"effective_date"`

	// ReplacesDiscount carries the descriptor of the discount currently
	// in effect, which this request will supersede.
	ReplacesDiscount string `json:"replaces_discount,omitempty"`
}

// NewDiscountPreviewResponse builds the preview response from a computation.
func NewDiscountPreviewResponse(t *tenant.Tenant, comp billing.DiscountComputation) *DiscountPreviewResponse {
	effective := "immediate"
	if comp.EffectiveDate != nil {
		effective = comp.EffectiveDate.Format(time.DateOnly)
	}
	return &DiscountPreviewResponse{
		TenantID:         t.ID,
		TenantName:       t.Name,
		Currency:         t.Currency,
		OriginalAmount:   comp.OriginalAmount,
		DiscountAmount:   comp.DiscountAmount,
		FinalAmount:      comp.FinalAmount,
		EffectiveDate:    effective,
		ReplacesDiscount: t.ActiveDiscount.String(),
	}
}
