package dto

import (
	"github.com/billforge/billforge/internal/domain/wizard"
	"github.com/billforge/billforge/internal/types"
)

// WizardStatusResponse describes where a wizard instance currently stands.
type WizardStatusResponse struct {
	Flow      types.WizardFlow  `json:"flow"`
	Step      types.WizardStep  `json:"step"`
	StepName  string            `json:"step_name"`
	Phase     types.WizardPhase `json:"phase"`
	StepError string            `json:"step_error,omitempty"`
	Dismissed bool              `json:"dismissed,omitempty"`
}

// NewWizardStatusResponse builds a status response from wizard state.
func NewWizardStatusResponse(s *wizard.State) *WizardStatusResponse {
	return &WizardStatusResponse{
		Flow:      s.Flow,
		Step:      s.Step,
		StepName:  types.StepName(s.Flow, s.Step),
		Phase:     s.Phase,
		StepError: s.StepError(),
		Dismissed: s.Dismissed,
	}
}
