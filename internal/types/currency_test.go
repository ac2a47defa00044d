package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetCurrencyPrecision(t *testing.T) {
	assert.Equal(t, int32(2), GetCurrencyPrecision("usd"))
	assert.Equal(t, int32(2), GetCurrencyPrecision("USD"))
	assert.Equal(t, int32(0), GetCurrencyPrecision("jpy"))
	assert.Equal(t, int32(3), GetCurrencyPrecision("bhd"))
	assert.Equal(t, int32(2), GetCurrencyPrecision("xyz"))
}

func TestRoundToCurrencyPrecision(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"usd rounds half up", "39.805", "usd", "39.81"},
		{"usd truncates dust", "39.8049", "usd", "39.8"},
		{"jpy rounds to whole units", "1500.5", "jpy", "1501"},
		{"bhd keeps three decimals", "10.1234", "bhd", "10.123"},
		{"unknown currency defaults to two decimals", "5.555", "xyz", "5.56"},
		{"already precise is unchanged", "159.2", "usd", "159.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)
			got := RoundToCurrencyPrecision(amount, tt.currency)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
