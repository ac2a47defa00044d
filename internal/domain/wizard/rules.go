package wizard

import (
	"time"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
)

// RuleFunc validates the current step's portion of the draft. A nil return
// permits advancing; a validation error blocks the step and its hint is
// surfaced verbatim as the inline error.
type RuleFunc func(s *State) error

type ruleKey struct {
	Flow types.WizardFlow
	Step types.WizardStep
}

// ruleRegistry holds one rule per (flow, step). Steps registered with a nil
// rule are display-only and never block advancement.
var ruleRegistry = map[ruleKey]RuleFunc{
	{types.WizardFlowDiscount, 1}: ruleSelectTenant,
	{types.WizardFlowDiscount, 2}: ruleDiscountDetails,
	{types.WizardFlowDiscount, 3}: ruleDiscountDuration,
	{types.WizardFlowDiscount, 4}: ruleReason,
	{types.WizardFlowDiscount, 5}: nil, // impact preview, display only
	{types.WizardFlowDiscount, 6}: ruleConfirmed,

	{types.WizardFlowCredit, 1}: ruleSelectTenant,
	{types.WizardFlowCredit, 2}: ruleCreditDetails,
	{types.WizardFlowCredit, 3}: nil, // usage rules, a default is always selected
	{types.WizardFlowCredit, 4}: ruleCreditExpiry,
	{types.WizardFlowCredit, 5}: ruleReason,
	{types.WizardFlowCredit, 6}: ruleConfirmed,
}

// Validate runs the registered rule for the state's current step.
func Validate(s *State) error {
	rule, ok := ruleRegistry[ruleKey{s.Flow, s.Step}]
	if !ok || rule == nil {
		return nil
	}
	return rule(s)
}

func ruleSelectTenant(s *State) error {
	if s.Tenant == nil {
		return ierr.NewError("no tenant selected").
			WithHint("Please select a tenant").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func ruleDiscountDetails(s *State) error {
	r := s.Discount
	if r.Name == "" {
		return ierr.NewError("discount name is empty").
			WithHint("Please enter a discount name").
			Mark(ierr.ErrValidation)
	}
	if !r.Value.IsPositive() {
		return ierr.NewError("discount value must be positive").
			WithHint("Discount value must be greater than zero").
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
	if r.Type == types.DiscountTypeFixed && s.Tenant != nil && r.Value.GreaterThan(s.Tenant.Amount) {
		return ierr.NewError("fixed discount exceeds invoice amount").
			WithHint("Discount cannot exceed invoice amount").
			WithReportableDetails(map[string]interface{}{
				"value":         r.Value,
				"tenant_amount": s.Tenant.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func ruleDiscountDuration(s *State) error {
	r := s.Discount
	if r.Duration == types.DiscountDurationFixedPeriod {
		if r.StartDate == nil || r.EndDate == nil {
			return ierr.NewError("fixed period requires start and end dates").
				WithHint("Please provide both start and end dates").
				Mark(ierr.ErrValidation)
		}
		if !r.EndDate.After(*r.StartDate) {
			return ierr.NewError("end date must be after start date").
				WithHint("End date must be after start date").
				Mark(ierr.ErrValidation)
		}
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if r.StartDate.Before(today) {
			return ierr.NewError("start date is in the past").
				WithHint("Start date must not be in the past").
				Mark(ierr.ErrValidation)
		}
	}
	if r.Duration == types.DiscountDurationOneTime && r.AppliesTo != types.DiscountAppliesToNextInvoice {
		return ierr.NewError("one-time discount must apply to next invoice").
			WithHint("One-time discounts must apply to the next invoice").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func ruleCreditDetails(s *State) error {
	r := s.Credit
	if r.Name == "" {
		return ierr.NewError("credit name is empty").
			WithHint("Please enter a credit name").
			Mark(ierr.ErrValidation)
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("credit amount must be positive").
			WithHint("Credit amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func ruleCreditExpiry(s *State) error {
	r := s.Credit
	if !r.HasExpiry {
		return nil
	}
	if r.ExpiryDate == nil {
		return ierr.NewError("expiry date is required").
			WithHint("Please provide an expiry date").
			Mark(ierr.ErrValidation)
	}
	if !r.ExpiryDate.After(time.Now().UTC()) {
		return ierr.NewError("expiry date must be in the future").
			WithHint("Expiry date must be in the future").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func ruleReason(s *State) error {
	var code types.ReasonCode
	var notes string
	switch s.Flow {
	case types.WizardFlowCredit:
		code, notes = s.Credit.ReasonCode, s.Credit.ReasonNotes
	default:
		code, notes = s.Discount.ReasonCode, s.Discount.ReasonNotes
	}
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

func ruleConfirmed(s *State) error {
	if !s.Confirmed() {
		return ierr.NewError("adjustment is not confirmed").
			WithHint("Please confirm the adjustment before submitting").
			Mark(ierr.ErrValidation)
	}
	return nil
}
