package billing

import (
	"testing"

	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProjectCredit(t *testing.T) {
	threshold := decimal.NewFromInt(1000)

	tests := []struct {
		name            string
		currentBalance  float64
		creditAmount    float64
		nextInvoice     float64
		rule            types.CreditUsageRule
		wantNewBalance  string
		wantWillApply   string
		wantRemaining   string
		wantLargeCredit bool
	}{
		{
			name:           "auto next credit smaller than invoice",
			currentBalance: 0,
			creditAmount:   50,
			nextInvoice:    199,
			rule:           types.CreditUsageRuleAutoNext,
			wantNewBalance: "50",
			wantWillApply:  "50",
			wantRemaining:  "0",
		},
		{
			name:           "auto next credit larger than invoice",
			currentBalance: 0,
			creditAmount:   300,
			nextInvoice:    199,
			rule:           types.CreditUsageRuleAutoNext,
			wantNewBalance: "300",
			wantWillApply:  "199",
			wantRemaining:  "101",
		},
		{
			name:           "auto next with existing balance only applies new credit",
			currentBalance: 500,
			creditAmount:   100,
			nextInvoice:    199,
			rule:           types.CreditUsageRuleAutoNext,
			wantNewBalance: "600",
			wantWillApply:  "100",
			wantRemaining:  "500",
		},
		{
			name:           "auto exhaust drains whole balance into invoice",
			currentBalance: 500,
			creditAmount:   600,
			nextInvoice:    4990,
			rule:           types.CreditUsageRuleAutoExhaust,
			wantNewBalance: "1100",
			wantWillApply:  "1100",
			wantRemaining:  "0",
		},
		{
			name:           "auto exhaust keeps surplus over invoice",
			currentBalance: 100,
			creditAmount:   300,
			nextInvoice:    199,
			rule:           types.CreditUsageRuleAutoExhaust,
			wantNewBalance: "400",
			wantWillApply:  "199",
			wantRemaining:  "201",
		},
		{
			name:           "manual applies nothing automatically",
			currentBalance: 100,
			creditAmount:   250,
			nextInvoice:    199,
			rule:           types.CreditUsageRuleManual,
			wantNewBalance: "350",
			wantWillApply:  "0",
			wantRemaining:  "250",
		},
		{
			name:            "large credit at threshold raises advisory",
			currentBalance:  0,
			creditAmount:    2000,
			nextInvoice:     199,
			rule:            types.CreditUsageRuleAutoNext,
			wantNewBalance:  "2000",
			wantWillApply:   "199",
			wantRemaining:   "1801",
			wantLargeCredit: true,
		},
		{
			name:           "balance exactly covers invoice",
			currentBalance: 99,
			creditAmount:   100,
			nextInvoice:    199,
			rule:           types.CreditUsageRuleAutoExhaust,
			wantNewBalance: "199",
			wantWillApply:  "199",
			wantRemaining:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj := ProjectCredit(
				decimal.NewFromFloat(tt.currentBalance),
				decimal.NewFromFloat(tt.creditAmount),
				decimal.NewFromFloat(tt.nextInvoice),
				tt.rule,
				"usd",
				threshold,
			)

			assert.Equal(t, tt.wantNewBalance, proj.NewBalance.String())
			assert.Equal(t, tt.wantWillApply, proj.WillApply.String())
			assert.Equal(t, tt.wantRemaining, proj.Remaining.String())
			assert.Equal(t, tt.wantLargeCredit, proj.LargeCredit)

			// The automatic rules always account for the full balance.
			if tt.rule != types.CreditUsageRuleManual {
				assert.True(t, proj.WillApply.Add(proj.Remaining).Equal(proj.NewBalance),
					"will_apply + remaining must equal new_balance")
			}
		})
	}
}

func TestProjectCreditLargeCreditIsAdvisoryOnly(t *testing.T) {
	proj := ProjectCredit(
		decimal.Zero,
		decimal.NewFromInt(5000),
		decimal.NewFromInt(199),
		types.CreditUsageRuleAutoNext,
		"usd",
		decimal.NewFromInt(1000),
	)

	assert.True(t, proj.LargeCredit)
	// Nothing about the projection itself changes.
	assert.Equal(t, "5000", proj.NewBalance.String())
	assert.Equal(t, "199", proj.WillApply.String())
}
