package wizard

import (
	"testing"

	"github.com/billforge/billforge/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// Every adjacent pair is walkable in both directions.
	for step := types.WizardStepFirst; step < types.WizardStepLast; step++ {
		assert.True(t, CanTransition(step, step+1), "forward from %d", step)
		assert.True(t, CanTransition(step+1, step), "backward from %d", step+1)
	}

	// No skipping and no wrapping.
	assert.False(t, CanTransition(1, 3))
	assert.False(t, CanTransition(2, 6))
	assert.False(t, CanTransition(6, 1))
	assert.False(t, CanTransition(types.WizardStepLast, types.WizardStepLast+1))
	assert.False(t, CanTransition(types.WizardStepFirst, types.WizardStepFirst-1))
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.Equal(t, []types.WizardStep{2}, ValidTransitionsFrom(1))
	assert.Equal(t, []types.WizardStep{2, 4}, ValidTransitionsFrom(3))
	assert.Equal(t, []types.WizardStep{5}, ValidTransitionsFrom(6))
	assert.Empty(t, ValidTransitionsFrom(7))
}

func TestIsTerminalStep(t *testing.T) {
	assert.True(t, IsTerminalStep(types.WizardStepLast))
	assert.False(t, IsTerminalStep(types.WizardStepFirst))
	assert.False(t, IsTerminalStep(5))
}
