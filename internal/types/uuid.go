package types

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_TENANT      = "tenant"
	UUID_PREFIX_DISCOUNT    = "disc"
	UUID_PREFIX_CREDIT      = "cred"
	UUID_PREFIX_AUDIT_ENTRY = "audit"
	UUID_PREFIX_WIZARD      = "wiz"
	UUID_PREFIX_EVENT       = "event"
)

// GenerateUUID returns a lowercase ULID. ULIDs sort lexicographically by
// creation time, which keeps audit listings naturally ordered.
func GenerateUUID() string {
	return strings.ToLower(ulid.Make().String())
}

// GenerateUUIDWithPrefix returns a prefixed ULID, e.g. "audit_01hx...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
