package auditlog

import (
	"time"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// Action labels the kind of committed mutation an entry records.
type Action string

const (
	ActionDiscountApplied Action = "Discount Applied"
	ActionCreditIssued    Action = "Credit Issued"
)

// Entry is the immutable record of a committed billing adjustment: what
// changed, by whom, and why. Entries are assembled by the engine after a
// successful commit and handed to the audit log boundary; the engine never
// persists them itself.
type Entry struct {
	ID            string                     `json:"id"`
	Timestamp     time.Time                  `json:"timestamp"`
	Action        Action                     `json:"action"`
	ActorID       string                     `json:"actor_id"`
	TenantID      string                     `json:"tenant_id"`
	TenantName    string                     `json:"tenant_name"`
	PreviousValue string                     `json:"previous_value,omitempty"`
	NewValue      string                     `json:"new_value"`
	ReasonCode    types.ReasonCode           `json:"reason_code"`
	ReasonNotes   string                     `json:"reason_notes,omitempty"`
	Deltas        map[string]decimal.Decimal `json:"deltas,omitempty"`
	Metadata      types.Metadata             `json:"metadata,omitempty"`
}

// Validate validates the entry before it is handed to the audit boundary.
func (e *Entry) Validate() error {
	if e.Action == "" {
		return ierr.NewError("audit action is required").
			WithHint("Audit entry is missing an action label").
			Mark(ierr.ErrValidation)
	}
	if e.TenantID == "" {
		return ierr.NewError("audit tenant id is required").
			WithHint("Audit entry is missing the tenant").
			Mark(ierr.ErrValidation)
	}
	if e.ActorID == "" {
		return ierr.NewError("audit actor is required").
			WithHint("Audit entry is missing the actor").
			Mark(ierr.ErrValidation)
	}
	if e.NewValue == "" {
		return ierr.NewError("audit new value is required").
			WithHint("Audit entry is missing the new value").
			Mark(ierr.ErrValidation)
	}
	return nil
}
