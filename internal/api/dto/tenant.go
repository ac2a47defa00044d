package dto

import (
	"time"

	"github.com/billforge/billforge/internal/domain/tenant"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// TenantResponse is the billing summary shown in the wizard's tenant
// selection step.
type TenantResponse struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Plan              string             `json:"plan"`
	BillingCycle      types.BillingCycle `json:"billing_cycle"`
	Amount            decimal.Decimal    `json:"amount"`
	Currency          string             `json:"currency"`
	NextInvoiceDate   time.Time          `json:"next_invoice_date"`
	CreditBalance     decimal.Decimal    `json:"credit_balance"`
	HasActiveDiscount bool               `json:"has_active_discount"`
	ActiveDiscount    string             `json:"active_discount,omitempty"`
}

// NewTenantResponse creates a tenant response from the domain model.
func NewTenantResponse(t *tenant.Tenant) *TenantResponse {
	if t == nil {
		return nil
	}
	return &TenantResponse{
		ID:                t.ID,
		Name:              t.Name,
		Plan:              t.Plan,
		BillingCycle:      t.BillingCycle,
		Amount:            t.Amount,
		Currency:          t.Currency,
		NextInvoiceDate:   t.NextInvoiceDate,
		CreditBalance:     t.CreditBalance,
		HasActiveDiscount: t.HasActiveDiscount(),
		ActiveDiscount:    t.ActiveDiscount.String(),
	}
}
