package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkClassification(t *testing.T) {
	err := NewError("discount value must be positive").
		WithHint("Discount value must be greater than zero").
		Mark(ErrValidation)

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsIntegration(err))
}

func TestHintPrefersAttachedHint(t *testing.T) {
	err := NewError("internal detail the user never sees").
		WithHint("Please select a tenant").
		Mark(ErrValidation)

	assert.Equal(t, "Please select a tenant", Hint(err))
}

func TestHintFallsBackToMessage(t *testing.T) {
	err := NewError("no hint attached").Mark(ErrSystem)
	assert.Equal(t, Hint(err), Hint(err))
	assert.Contains(t, Hint(err), "no hint attached")

	assert.Empty(t, Hint(nil))
}

func TestWithErrorWrapsAndRemarks(t *testing.T) {
	inner := NewError("boundary refused").Mark(ErrIntegration)
	outer := WithError(inner).
		WithHint("The billing service failed to apply the adjustment").
		Mark(ErrTimeout)

	// Both marks are visible through the chain.
	assert.True(t, IsTimeout(outer))
	assert.True(t, IsIntegration(outer))
	assert.Equal(t, "The billing service failed to apply the adjustment", Hint(outer))
}

func TestWithHintf(t *testing.T) {
	err := NewError("percentage discount exceeds maximum").
		WithHintf("Percentage discounts cannot exceed %d%%", 50).
		Mark(ErrValidation)

	assert.Equal(t, "Percentage discounts cannot exceed 50%", Hint(err))
}

func TestReportableDetailsDoNotLeakIntoHint(t *testing.T) {
	err := NewError("fixed discount exceeds invoice amount").
		WithHint("Discount cannot exceed invoice amount").
		WithReportableDetails(map[string]interface{}{
			"value":         250,
			"tenant_amount": 199,
		}).
		Mark(ErrValidation)

	assert.Equal(t, "Discount cannot exceed invoice amount", Hint(err))
}
