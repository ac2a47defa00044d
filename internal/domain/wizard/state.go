package wizard

import (
	"github.com/billforge/billforge/internal/domain/adjustment"
	"github.com/billforge/billforge/internal/domain/tenant"
	"github.com/billforge/billforge/internal/types"
)

// State is the complete state of one open wizard dialog: the current step,
// lifecycle phase, selected tenant, the draft request being built, and the
// cached last validation result per step (so inline errors can be
// re-displayed without re-running validation speculatively).
//
// A State is owned by exactly one wizard instance and is never shared, so
// it carries no locking of its own.
type State struct {
	Flow  types.WizardFlow  `json:"flow"`
	Step  types.WizardStep  `json:"step"`
	Phase types.WizardPhase `json:"phase"`

	Tenant   *tenant.Tenant              `json:"tenant,omitempty"`
	Discount *adjustment.DiscountRequest `json:"discount,omitempty"`
	Credit   *adjustment.CreditRequest   `json:"credit,omitempty"`

	// StepErrors caches the last validation failure per step.
	StepErrors map[types.WizardStep]string `json:"step_errors,omitempty"`

	// Dismissed is set when the dialog is closed while a commit is in
	// flight. The outcome of that commit is still fully processed.
	Dismissed bool `json:"dismissed"`
}

// NewState creates a fresh wizard state at step 1 with an empty draft.
func NewState(flow types.WizardFlow) *State {
	s := &State{
		Flow:       flow,
		Step:       types.WizardStepFirst,
		Phase:      types.WizardPhaseEditing,
		StepErrors: make(map[types.WizardStep]string),
	}
	switch flow {
	case types.WizardFlowCredit:
		s.Credit = adjustment.NewCreditRequest()
	default:
		s.Discount = adjustment.NewDiscountRequest()
	}
	return s
}

// Reset discards the entire draft and returns the state to step 1. Called
// on cancel, on close, and immediately after a successful commit.
func (s *State) Reset() {
	fresh := NewState(s.Flow)
	s.Step = fresh.Step
	s.Phase = types.WizardPhaseEditing
	s.Tenant = nil
	s.Discount = fresh.Discount
	s.Credit = fresh.Credit
	s.StepErrors = fresh.StepErrors
	s.Dismissed = false
}

// Confirmed reports whether the draft's confirmation checkbox is set.
func (s *State) Confirmed() bool {
	switch s.Flow {
	case types.WizardFlowCredit:
		return s.Credit != nil && s.Credit.Confirmed
	default:
		return s.Discount != nil && s.Discount.Confirmed
	}
}

// SetConfirmed sets the draft's confirmation flag.
func (s *State) SetConfirmed(confirmed bool) {
	switch s.Flow {
	case types.WizardFlowCredit:
		if s.Credit != nil {
			s.Credit.Confirmed = confirmed
		}
	default:
		if s.Discount != nil {
			s.Discount.Confirmed = confirmed
		}
	}
}

// SetTenant attaches the selected tenant to the state and stamps the draft
// with its ID.
func (s *State) SetTenant(t *tenant.Tenant) {
	s.Tenant = t
	switch s.Flow {
	case types.WizardFlowCredit:
		if s.Credit != nil {
			s.Credit.TenantID = t.ID
		}
	default:
		if s.Discount != nil {
			s.Discount.TenantID = t.ID
		}
	}
}

// StepError returns the cached validation error for the current step.
func (s *State) StepError() string {
	return s.StepErrors[s.Step]
}
