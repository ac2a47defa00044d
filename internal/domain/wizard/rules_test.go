package wizard

import (
	"testing"
	"time"

	"github.com/billforge/billforge/internal/domain/tenant"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleTestTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:              "tenant_1",
		Name:            "Acme Corp",
		Plan:            "Growth",
		BillingCycle:    types.BillingCycleMonthly,
		Amount:          decimal.NewFromInt(199),
		Currency:        "usd",
		NextInvoiceDate: time.Now().UTC().AddDate(0, 1, 0),
	}
}

func TestDiscountStepRules(t *testing.T) {
	future := time.Now().UTC().AddDate(0, 0, 7)
	farFuture := future.AddDate(0, 1, 0)
	past := time.Now().UTC().AddDate(0, 0, -7)

	tests := []struct {
		name     string
		step     types.WizardStep
		mutate   func(s *State)
		wantErr  bool
		wantHint string
	}{
		{
			name:     "step 1 blocks without a tenant",
			step:     1,
			mutate:   func(s *State) { s.Tenant = nil },
			wantErr:  true,
			wantHint: "Please select a tenant",
		},
		{
			name:   "step 1 passes with a tenant",
			step:   1,
			mutate: func(s *State) {},
		},
		{
			name:     "step 2 blocks empty name",
			step:     2,
			mutate:   func(s *State) { s.Discount.Value = decimal.NewFromInt(10) },
			wantErr:  true,
			wantHint: "Please enter a discount name",
		},
		{
			name: "step 2 blocks zero value",
			step: 2,
			mutate: func(s *State) {
				s.Discount.Name = "Loyalty reward"
			},
			wantErr:  true,
			wantHint: "Discount value must be greater than zero",
		},
		{
			name: "step 2 blocks percentage above cap",
			step: 2,
			mutate: func(s *State) {
				s.Discount.Name = "Loyalty reward"
				s.Discount.Value = decimal.NewFromInt(51)
			},
			wantErr:  true,
			wantHint: "Percentage discounts cannot exceed 50%",
		},
		{
			name: "step 2 allows percentage at cap",
			step: 2,
			mutate: func(s *State) {
				s.Discount.Name = "Loyalty reward"
				s.Discount.Value = decimal.NewFromInt(50)
			},
		},
		{
			name: "step 2 blocks fixed discount above invoice amount",
			step: 2,
			mutate: func(s *State) {
				s.Discount.Name = "Loyalty reward"
				s.Discount.Type = types.DiscountTypeFixed
				s.Discount.Value = decimal.NewFromInt(250)
			},
			wantErr:  true,
			wantHint: "Discount cannot exceed invoice amount",
		},
		{
			name: "step 3 blocks fixed period without dates",
			step: 3,
			mutate: func(s *State) {
				s.Discount.Duration = types.DiscountDurationFixedPeriod
			},
			wantErr:  true,
			wantHint: "Please provide both start and end dates",
		},
		{
			name: "step 3 blocks end before start",
			step: 3,
			mutate: func(s *State) {
				s.Discount.Duration = types.DiscountDurationFixedPeriod
				s.Discount.StartDate = &farFuture
				s.Discount.EndDate = &future
			},
			wantErr:  true,
			wantHint: "End date must be after start date",
		},
		{
			name: "step 3 blocks start in the past",
			step: 3,
			mutate: func(s *State) {
				s.Discount.Duration = types.DiscountDurationFixedPeriod
				s.Discount.StartDate = &past
				s.Discount.EndDate = &future
			},
			wantErr:  true,
			wantHint: "Start date must not be in the past",
		},
		{
			name: "step 3 blocks one-time not applying to next invoice",
			step: 3,
			mutate: func(s *State) {
				s.Discount.Duration = types.DiscountDurationOneTime
				s.Discount.AppliesTo = types.DiscountAppliesToSubscription
			},
			wantErr:  true,
			wantHint: "One-time discounts must apply to the next invoice",
		},
		{
			name: "step 3 allows one-time on next invoice",
			step: 3,
			mutate: func(s *State) {
				s.Discount.Duration = types.DiscountDurationOneTime
				s.Discount.AppliesTo = types.DiscountAppliesToNextInvoice
			},
		},
		{
			name:     "step 4 blocks missing reason",
			step:     4,
			mutate:   func(s *State) {},
			wantErr:  true,
			wantHint: "Please select a reason",
		},
		{
			name: "step 4 blocks other without notes",
			step: 4,
			mutate: func(s *State) {
				s.Discount.ReasonCode = types.ReasonCodeOther
			},
			wantErr:  true,
			wantHint: "Please add notes explaining the reason",
		},
		{
			name: "step 4 allows other with notes",
			step: 4,
			mutate: func(s *State) {
				s.Discount.ReasonCode = types.ReasonCodeOther
				s.Discount.ReasonNotes = "negotiated at renewal"
			},
		},
		{
			name:   "step 5 is display only",
			step:   5,
			mutate: func(s *State) {},
		},
		{
			name:     "step 6 blocks unconfirmed",
			step:     6,
			mutate:   func(s *State) {},
			wantErr:  true,
			wantHint: "Please confirm the adjustment before submitting",
		},
		{
			name:   "step 6 passes when confirmed",
			step:   6,
			mutate: func(s *State) { s.Discount.Confirmed = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(types.WizardFlowDiscount)
			s.SetTenant(ruleTestTenant())
			s.Step = tt.step
			tt.mutate(s)

			err := Validate(s)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				assert.Equal(t, tt.wantHint, ierr.Hint(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreditStepRules(t *testing.T) {
	past := time.Now().UTC().AddDate(0, 0, -1)
	future := time.Now().UTC().AddDate(0, 0, 30)

	tests := []struct {
		name     string
		step     types.WizardStep
		mutate   func(s *State)
		wantErr  bool
		wantHint string
	}{
		{
			name:     "step 2 blocks empty name",
			step:     2,
			mutate:   func(s *State) { s.Credit.Amount = decimal.NewFromInt(100) },
			wantErr:  true,
			wantHint: "Please enter a credit name",
		},
		{
			name:     "step 2 blocks non-positive amount",
			step:     2,
			mutate:   func(s *State) { s.Credit.Name = "Goodwill credit" },
			wantErr:  true,
			wantHint: "Credit amount must be greater than zero",
		},
		{
			name: "step 3 never blocks",
			step: 3,
			mutate: func(s *State) {
				s.Credit.UsageRule = types.CreditUsageRuleManual
			},
		},
		{
			name:   "step 4 passes without expiry",
			step:   4,
			mutate: func(s *State) {},
		},
		{
			name: "step 4 blocks expiry toggle without a date",
			step: 4,
			mutate: func(s *State) {
				s.Credit.HasExpiry = true
			},
			wantErr:  true,
			wantHint: "Please provide an expiry date",
		},
		{
			name: "step 4 blocks past expiry",
			step: 4,
			mutate: func(s *State) {
				s.Credit.HasExpiry = true
				s.Credit.ExpiryDate = &past
			},
			wantErr:  true,
			wantHint: "Expiry date must be in the future",
		},
		{
			name: "step 4 allows future expiry",
			step: 4,
			mutate: func(s *State) {
				s.Credit.HasExpiry = true
				s.Credit.ExpiryDate = &future
			},
		},
		{
			name:     "step 5 blocks missing reason",
			step:     5,
			mutate:   func(s *State) {},
			wantErr:  true,
			wantHint: "Please select a reason",
		},
		{
			name: "step 5 passes with reason",
			step: 5,
			mutate: func(s *State) {
				s.Credit.ReasonCode = types.ReasonCodeServiceIssue
			},
		},
		{
			name:     "step 6 blocks unconfirmed",
			step:     6,
			mutate:   func(s *State) {},
			wantErr:  true,
			wantHint: "Please confirm the adjustment before submitting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(types.WizardFlowCredit)
			s.SetTenant(ruleTestTenant())
			s.Step = tt.step
			tt.mutate(s)

			err := Validate(s)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantHint, ierr.Hint(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState(types.WizardFlowDiscount)
	require.NotNil(t, s.Discount)
	assert.Nil(t, s.Credit)
	assert.Equal(t, types.WizardStepFirst, s.Step)
	assert.Equal(t, types.WizardPhaseEditing, s.Phase)
	assert.Equal(t, types.DiscountTypePercentage, s.Discount.Type)
	assert.Equal(t, types.DiscountAppliesToSubscription, s.Discount.AppliesTo)
	assert.Equal(t, types.DiscountDurationUntilCancelled, s.Discount.Duration)

	c := NewState(types.WizardFlowCredit)
	require.NotNil(t, c.Credit)
	assert.Nil(t, c.Discount)
	assert.Equal(t, types.CreditUsageRuleAutoNext, c.Credit.UsageRule)
}

func TestStateReset(t *testing.T) {
	s := NewState(types.WizardFlowDiscount)
	s.SetTenant(ruleTestTenant())
	s.Step = 4
	s.Discount.Name = "Loyalty reward"
	s.Discount.Value = decimal.NewFromInt(20)
	s.Discount.ReasonCode = types.ReasonCodeCustomerRetention
	s.StepErrors[2] = "something"
	s.Dismissed = true
	firstID := s.Discount.ID

	s.Reset()

	assert.Equal(t, types.WizardStepFirst, s.Step)
	assert.Equal(t, types.WizardPhaseEditing, s.Phase)
	assert.Nil(t, s.Tenant)
	assert.Empty(t, s.StepErrors)
	assert.False(t, s.Dismissed)
	assert.Empty(t, s.Discount.Name)
	assert.NotEqual(t, firstID, s.Discount.ID)
}

func TestSetTenantStampsDraft(t *testing.T) {
	s := NewState(types.WizardFlowCredit)
	s.SetTenant(ruleTestTenant())
	assert.Equal(t, "tenant_1", s.Credit.TenantID)

	d := NewState(types.WizardFlowDiscount)
	d.SetTenant(ruleTestTenant())
	assert.Equal(t, "tenant_1", d.Discount.TenantID)
}

func TestStepErrorCache(t *testing.T) {
	s := NewState(types.WizardFlowDiscount)
	s.StepErrors = map[types.WizardStep]string{
		2: "Please enter a discount name",
	}
	s.Step = 2
	assert.Equal(t, "Please enter a discount name", s.StepError())

	s.Step = 3
	assert.Empty(t, s.StepError())
	assert.Equal(t, []types.WizardStep{2}, lo.Keys(s.StepErrors))
}
