package idempotency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKeyIsDeterministic(t *testing.T) {
	g := NewGenerator()

	a := g.GenerateKey(ScopeAdjustmentCommit, map[string]interface{}{
		"request_id": "disc_123",
		"tenant_id":  "tenant_acme",
	})
	b := g.GenerateKey(ScopeAdjustmentCommit, map[string]interface{}{
		"tenant_id":  "tenant_acme",
		"request_id": "disc_123",
	})

	assert.Equal(t, a, b, "parameter order must not affect the key")
	assert.Contains(t, a, string(ScopeAdjustmentCommit)+":")
}

func TestGenerateKeyDistinguishesParams(t *testing.T) {
	g := NewGenerator()

	a := g.GenerateKey(ScopeAdjustmentCommit, map[string]interface{}{
		"request_id": "disc_123",
		"tenant_id":  "tenant_acme",
	})
	b := g.GenerateKey(ScopeAdjustmentCommit, map[string]interface{}{
		"request_id": "disc_456",
		"tenant_id":  "tenant_acme",
	})

	assert.NotEqual(t, a, b)
}
