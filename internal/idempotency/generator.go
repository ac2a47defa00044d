package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Scope namespaces idempotency keys per operation type.
type Scope string

const (
	// ScopeAdjustmentCommit covers discount/credit commit attempts against
	// the billing mutation boundary.
	ScopeAdjustmentCommit Scope = "adjustment_commit"
)

// Generator produces deterministic idempotency keys from an operation scope
// and its identifying parameters.
type Generator struct{}

// NewGenerator creates a new idempotency key generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateKey builds a key of the form "scope:hex(sha256(sorted params))".
// Parameter ordering does not affect the result.
func (g *Generator) GenerateKey(scope Scope, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(":%s=%v", k, params[k]))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return string(scope) + ":" + hex.EncodeToString(sum[:])
}
