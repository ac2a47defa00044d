package adjustment

import (
	"time"

	"github.com/billforge/billforge/internal/domain/tenant"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// DiscountRequest is the draft built up by the discount wizard. It lives
// only inside a wizard instance until the commit succeeds; nothing is
// persisted or visible outside the wizard before that.
type DiscountRequest struct {
	ID             string                  `json:"id"`
	TenantID       string                  `json:"tenant_id"`
	Name           string                  `json:"name"`
	Type           types.DiscountType      `json:"type"`
	Value          decimal.Decimal         `json:"value"`
	AppliesTo      types.DiscountAppliesTo `json:"applies_to"`
	Duration       types.DiscountDuration  `json:"duration"`
	StartDate      *time.Time              `json:"start_date,omitempty"`
	EndDate        *time.Time              `json:"end_date,omitempty"`
	ReasonCode     types.ReasonCode        `json:"reason_code"`
	ReasonNotes    string                  `json:"reason_notes,omitempty"`
	Confirmed      bool                    `json:"confirmed"`
	IdempotencyKey string                  `json:"idempotency_key,omitempty"`
}

// NewDiscountRequest returns an empty draft with the defaults the wizard
// preselects.
func NewDiscountRequest() *DiscountRequest {
	return &DiscountRequest{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DISCOUNT),
		Type:      types.DiscountTypePercentage,
		AppliesTo: types.DiscountAppliesToSubscription,
		Duration:  types.DiscountDurationUntilCancelled,
	}
}

// Validate enforces the full set of commit-time invariants against the
// selected tenant. Step rules enforce these incrementally; this is the final
// gate run immediately before the commit boundary is invoked.
func (r *DiscountRequest) Validate(t *tenant.Tenant) error {
	if t == nil || r.TenantID == "" || r.TenantID != t.ID {
		return ierr.NewError("discount request has no tenant").
			WithHint("Please select a tenant").
			Mark(ierr.ErrValidation)
	}
	if r.Name == "" {
		return ierr.NewError("discount name is empty").
			WithHint("Please enter a discount name").
			Mark(ierr.ErrValidation)
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if err := r.AppliesTo.Validate(); err != nil {
		return err
	}
	if err := r.Duration.Validate(); err != nil {
		return err
	}
	if !r.Value.IsPositive() {
		return ierr.NewError("discount value must be positive").
			WithHint("Discount value must be greater than zero").
			WithReportableDetails(map[string]interface{}{
				"value": r.Value,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.Type == types.DiscountTypePercentage && r.Value.GreaterThan(types.MaxPercentageDiscount) {
		return ierr.NewError("percentage discount exceeds maximum").
			WithHintf("Percentage discounts cannot exceed %s%%", types.MaxPercentageDiscount).
			WithReportableDetails(map[string]interface{}{
				"value": r.Value,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.Type == types.DiscountTypeFixed && r.Value.GreaterThan(t.Amount) {
		return ierr.NewError("fixed discount exceeds invoice amount").
			WithHint("Discount cannot exceed invoice amount").
			WithReportableDetails(map[string]interface{}{
				"value":         r.Value,
				"tenant_amount": t.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.Duration == types.DiscountDurationOneTime && r.AppliesTo != types.DiscountAppliesToNextInvoice {
		return ierr.NewError("one-time discount must apply to next invoice").
			WithHint("One-time discounts must apply to the next invoice").
			Mark(ierr.ErrValidation)
	}
	if r.Duration == types.DiscountDurationFixedPeriod {
		if err := validateFixedPeriod(r.StartDate, r.EndDate); err != nil {
			return err
		}
	}
	if err := validateReason(r.ReasonCode, r.ReasonNotes); err != nil {
		return err
	}
	if !r.Confirmed {
		return ierr.NewError("discount request is not confirmed").
			WithHint("Please confirm the adjustment before submitting").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Descriptor returns the discount summary recorded as the audit entry's
// new value when this request commits.
func (r *DiscountRequest) Descriptor() *tenant.DiscountDescriptor {
	return &tenant.DiscountDescriptor{
		Name:      r.Name,
		Type:      r.Type,
		Value:     r.Value,
		AppliesTo: r.AppliesTo,
		Duration:  r.Duration,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// CreditRequest is the draft built up by the credit wizard.
type CreditRequest struct {
	ID             string                `json:"id"`
	TenantID       string                `json:"tenant_id"`
	Name           string                `json:"name"`
	Amount         decimal.Decimal       `json:"amount"`
	UsageRule      types.CreditUsageRule `json:"usage_rule"`
	HasExpiry      bool                  `json:"has_expiry"`
	ExpiryDate     *time.Time            `json:"expiry_date,omitempty"`
	ReasonCode     types.ReasonCode      `json:"reason_code"`
	ReasonNotes    string                `json:"reason_notes,omitempty"`
	Confirmed      bool                  `json:"confirmed"`
	IdempotencyKey string                `json:"idempotency_key,omitempty"`
}

// NewCreditRequest returns an empty draft with the defaults the wizard
// preselects. A usage rule is always selected, so the usage rules step has
// no blocking validation.
func NewCreditRequest() *CreditRequest {
	return &CreditRequest{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT),
		UsageRule: types.CreditUsageRuleAutoNext,
	}
}

// Validate enforces the full set of commit-time invariants.
func (r *CreditRequest) Validate(t *tenant.Tenant) error {
	if t == nil || r.TenantID == "" || r.TenantID != t.ID {
		return ierr.NewError("credit request has no tenant").
			WithHint("Please select a tenant").
			Mark(ierr.ErrValidation)
	}
	if r.Name == "" {
		return ierr.NewError("credit name is empty").
			WithHint("Please enter a credit name").
			Mark(ierr.ErrValidation)
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("credit amount must be positive").
			WithHint("Credit amount must be greater than zero").
			WithReportableDetails(map[string]interface{}{
				"amount": r.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := r.UsageRule.Validate(); err != nil {
		return err
	}
	if r.HasExpiry {
		if err := validateExpiry(r.ExpiryDate); err != nil {
			return err
		}
	}
	if err := validateReason(r.ReasonCode, r.ReasonNotes); err != nil {
		return err
	}
	if !r.Confirmed {
		return ierr.NewError("credit request is not confirmed").
			WithHint("Please confirm the adjustment before submitting").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateReason(code types.ReasonCode, notes string) error {
	if code == "" {
		return ierr.NewError("reason code is required").
			WithHint("Please select a reason").
			Mark(ierr.ErrValidation)
	}
	if err := code.Validate(); err != nil {
		return err
	}
	if code == types.ReasonCodeOther && notes == "" {
		return ierr.NewError("reason notes required for other").
			WithHint("Please add notes explaining the reason").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateFixedPeriod(start, end *time.Time) error {
	if start == nil || end == nil {
		return ierr.NewError("fixed period requires start and end dates").
			WithHint("Please provide both start and end dates").
			Mark(ierr.ErrValidation)
	}
	if !end.After(*start) {
		return ierr.NewError("end date must be after start date").
			WithHint("End date must be after start date").
			WithReportableDetails(map[string]interface{}{
				"start_date": start,
				"end_date":   end,
			}).
			Mark(ierr.ErrValidation)
	}
	today := startOfDayUTC(time.Now())
	if start.Before(today) {
		return ierr.NewError("start date is in the past").
			WithHint("Start date must not be in the past").
			WithReportableDetails(map[string]interface{}{
				"start_date": start,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateExpiry(expiry *time.Time) error {
	if expiry == nil {
		return ierr.NewError("expiry date is required").
			WithHint("Please provide an expiry date").
			Mark(ierr.ErrValidation)
	}
	if !expiry.After(time.Now().UTC()) {
		return ierr.NewError("expiry date must be in the future").
			WithHint("Expiry date must be in the future").
			WithReportableDetails(map[string]interface{}{
				"expiry_date": expiry,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
