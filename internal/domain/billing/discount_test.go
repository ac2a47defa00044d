package billing

import (
	"testing"
	"time"

	"github.com/billforge/billforge/internal/domain/adjustment"
	"github.com/billforge/billforge/internal/domain/tenant"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testTenant(amount float64, currency string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:              "tenant_1",
		Name:            "Acme Corp",
		Plan:            "Growth",
		BillingCycle:    types.BillingCycleMonthly,
		Amount:          decimal.NewFromFloat(amount),
		Currency:        currency,
		NextInvoiceDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name             string
		req              *adjustment.DiscountRequest
		tenant           *tenant.Tenant
		wantDiscount     string
		wantFinal        string
		wantEffectiveNil bool
	}{
		{
			name: "percentage discount on monthly amount",
			req: &adjustment.DiscountRequest{
				Type:      types.DiscountTypePercentage,
				Value:     decimal.NewFromInt(20),
				AppliesTo: types.DiscountAppliesToSubscription,
			},
			tenant:           testTenant(199, "usd"),
			wantDiscount:     "39.8",
			wantFinal:        "159.2",
			wantEffectiveNil: true,
		},
		{
			name: "fixed discount",
			req: &adjustment.DiscountRequest{
				Type:      types.DiscountTypeFixed,
				Value:     decimal.NewFromInt(50),
				AppliesTo: types.DiscountAppliesToSubscription,
			},
			tenant:           testTenant(199, "usd"),
			wantDiscount:     "50",
			wantFinal:        "149",
			wantEffectiveNil: true,
		},
		{
			name: "fixed discount larger than amount clamps final to zero",
			req: &adjustment.DiscountRequest{
				Type:      types.DiscountTypeFixed,
				Value:     decimal.NewFromInt(250),
				AppliesTo: types.DiscountAppliesToSubscription,
			},
			tenant:           testTenant(199, "usd"),
			wantDiscount:     "250",
			wantFinal:        "0",
			wantEffectiveNil: true,
		},
		{
			name: "percentage rounds to currency precision",
			req: &adjustment.DiscountRequest{
				Type:      types.DiscountTypePercentage,
				Value:     decimal.NewFromInt(33),
				AppliesTo: types.DiscountAppliesToSubscription,
			},
			tenant:           testTenant(99.99, "usd"),
			wantDiscount:     "33",
			wantFinal:        "66.99",
			wantEffectiveNil: true,
		},
		{
			name: "zero decimal currency rounds to whole units",
			req: &adjustment.DiscountRequest{
				Type:      types.DiscountTypePercentage,
				Value:     decimal.NewFromInt(15),
				AppliesTo: types.DiscountAppliesToSubscription,
			},
			tenant:           testTenant(10000, "jpy"),
			wantDiscount:     "1500",
			wantFinal:        "8500",
			wantEffectiveNil: true,
		},
		{
			name: "next invoice discount carries effective date",
			req: &adjustment.DiscountRequest{
				Type:      types.DiscountTypePercentage,
				Value:     decimal.NewFromInt(10),
				AppliesTo: types.DiscountAppliesToNextInvoice,
			},
			tenant:           testTenant(199, "usd"),
			wantDiscount:     "19.9",
			wantFinal:        "179.1",
			wantEffectiveNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := CalculateDiscount(tt.req, tt.tenant)

			assert.True(t, comp.OriginalAmount.Equal(tt.tenant.Amount))
			assert.Equal(t, tt.wantDiscount, comp.DiscountAmount.String())
			assert.Equal(t, tt.wantFinal, comp.FinalAmount.String())
			if tt.wantEffectiveNil {
				assert.True(t, comp.Immediate())
			} else {
				assert.False(t, comp.Immediate())
				assert.Equal(t, tt.tenant.NextInvoiceDate, *comp.EffectiveDate)
			}
		})
	}
}

func TestCalculateDiscountIsIdempotent(t *testing.T) {
	req := &adjustment.DiscountRequest{
		Type:      types.DiscountTypePercentage,
		Value:     decimal.NewFromInt(20),
		AppliesTo: types.DiscountAppliesToSubscription,
	}
	tn := testTenant(199, "usd")

	first := CalculateDiscount(req, tn)
	second := CalculateDiscount(req, tn)

	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.FinalAmount.Equal(second.FinalAmount))
}
