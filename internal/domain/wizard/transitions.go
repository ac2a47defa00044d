package wizard

import (
	"slices"

	"github.com/billforge/billforge/internal/types"
)

// Transition represents a valid step transition.
type Transition struct {
	From types.WizardStep
	To   types.WizardStep
}

// validTransitions defines all allowed step transitions. Forward moves are
// gated by the step's validation rule; backward moves are always allowed.
var validTransitions = map[Transition]bool{
	{1, 2}: true, // tenant selected
	{2, 3}: true, // details entered
	{3, 4}: true, // duration / usage configured
	{4, 5}: true, // reason / expiry captured
	{5, 6}: true, // preview acknowledged
	{2, 1}: true,
	{3, 2}: true,
	{4, 3}: true,
	{5, 4}: true,
	{6, 5}: true,
}

// CanTransition checks if a transition from one step to another is valid.
func CanTransition(from, to types.WizardStep) bool {
	return validTransitions[Transition{from, to}]
}

// ValidTransitionsFrom returns all valid target steps from the given step.
func ValidTransitionsFrom(from types.WizardStep) []types.WizardStep {
	targets := make([]types.WizardStep, 0)
	for t := range validTransitions {
		if t.From == from {
			targets = append(targets, t.To)
		}
	}

	// Stabilize ordering for deterministic callers/tests.
	slices.Sort(targets)
	return targets
}

// IsTerminalStep reports whether the step is the flow's confirmation step,
// the only step Submit is reachable from.
func IsTerminalStep(step types.WizardStep) bool {
	return step == types.WizardStepLast
}
