package dto

import (
	"time"

	"github.com/billforge/billforge/internal/domain/auditlog"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// AuditEntryResponse is the representation of an audit entry handed to the
// host UI and serialized onto the committed-adjustment event.
type AuditEntryResponse struct {
	ID            string                     `json:"id"`
	Timestamp     time.Time                  `json:"timestamp"`
	Action        auditlog.Action            `json:"action"`
	ActorID       string                     `json:"actor_id"`
	TenantID      string                     `json:"tenant_id"`
	TenantName    string                     `json:"tenant_name"`
	PreviousValue string                     `json:"previous_value,omitempty"`
	NewValue      string                     `json:"new_value"`
	ReasonCode    types.ReasonCode           `json:"reason_code"`
	ReasonNotes   string                     `json:"reason_notes,omitempty"`
	Deltas        map[string]decimal.Decimal `json:"deltas,omitempty"`
}

// NewAuditEntryResponse creates a response from an audit entry.
func NewAuditEntryResponse(e *auditlog.Entry) *AuditEntryResponse {
	if e == nil {
		return nil
	}
	return &AuditEntryResponse{
		ID:            e.ID,
		Timestamp:     e.Timestamp,
		Action:        e.Action,
		ActorID:       e.ActorID,
		TenantID:      e.TenantID,
		TenantName:    e.TenantName,
		PreviousValue: e.PreviousValue,
		NewValue:      e.NewValue,
		ReasonCode:    e.ReasonCode,
		ReasonNotes:   e.ReasonNotes,
		Deltas:        e.Deltas,
	}
}
