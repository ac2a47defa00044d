package types

import (
	ierr "github.com/billforge/billforge/internal/errors"
)

// WizardFlow identifies which adjustment flow a wizard instance drives.
type WizardFlow string

const (
	WizardFlowDiscount WizardFlow = "discount"
	WizardFlowCredit   WizardFlow = "credit"
)

// Validate validates the wizard flow.
func (f WizardFlow) Validate() error {
	switch f {
	case WizardFlowDiscount, WizardFlowCredit:
		return nil
	default:
		return ierr.NewError("invalid wizard flow").
			WithHint("Wizard flow must be one of: discount, credit").
			WithReportableDetails(map[string]interface{}{
				"flow": f,
			}).
			Mark(ierr.ErrValidation)
	}
}

// WizardStep is a 1-based step index within a flow.
type WizardStep int

const (
	WizardStepFirst WizardStep = 1
	WizardStepLast  WizardStep = 6
)

// Valid reports whether the step index is within bounds.
func (s WizardStep) Valid() bool {
	return s >= WizardStepFirst && s <= WizardStepLast
}

var discountStepNames = map[WizardStep]string{
	1: "Select Tenant",
	2: "Discount Details",
	3: "Duration & Expiry",
	4: "Reason & Notes",
	5: "Impact Preview",
	6: "Confirmation",
}

var creditStepNames = map[WizardStep]string{
	1: "Select Tenant",
	2: "Credit Details",
	3: "Usage Rules",
	4: "Expiry",
	5: "Reason & Notes",
	6: "Confirmation & Preview",
}

// StepName returns the display name for a step within a flow.
func StepName(flow WizardFlow, step WizardStep) string {
	switch flow {
	case WizardFlowCredit:
		return creditStepNames[step]
	default:
		return discountStepNames[step]
	}
}

// WizardPhase is the coarse lifecycle phase of a wizard instance. A wizard
// spends its life in editing, passes through submitting exactly once per
// commit attempt, and ends committed or discarded.
type WizardPhase string

const (
	// WizardPhaseEditing accepts field edits and navigation commands.
	WizardPhaseEditing WizardPhase = "editing"
	// WizardPhaseSubmitting has a commit in flight; all commands except
	// Close are rejected until the outcome arrives.
	WizardPhaseSubmitting WizardPhase = "submitting"
	// WizardPhaseCommitted is terminal: the request was fully applied.
	WizardPhaseCommitted WizardPhase = "committed"
	// WizardPhaseDiscarded is terminal: the request was abandoned.
	WizardPhaseDiscarded WizardPhase = "discarded"
)
