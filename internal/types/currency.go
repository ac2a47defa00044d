package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrecision is used for currencies not present in the table.
const DefaultCurrencyPrecision int32 = 2

// currencyPrecisions maps lowercase ISO 4217 codes to their minor-unit
// precision. Zero-decimal and three-decimal currencies are the exceptions;
// everything else rounds to two decimals.
var currencyPrecisions = map[string]int32{
	// 2-decimal currencies (most common)
	"usd": 2,
	"eur": 2,
	"gbp": 2,
	"aud": 2,
	"cad": 2,
	"inr": 2,
	"sgd": 2,
	"aed": 2,
	"sar": 2,

	// 0-decimal currencies
	"jpy": 0,
	"krw": 0,
	"vnd": 0,
	"clp": 0,

	// 3-decimal currencies
	"bhd": 3,
	"kwd": 3,
	"omr": 3,
}

// GetCurrencyPrecision returns the minor-unit precision for a currency code.
func GetCurrencyPrecision(currency string) int32 {
	if precision, ok := currencyPrecisions[strings.ToLower(currency)]; ok {
		return precision
	}
	return DefaultCurrencyPrecision
}

// RoundToCurrencyPrecision rounds an amount to the currency's minor-unit
// precision using half-up rounding. All monetary values are rounded at the
// source so downstream sums never accumulate sub-precision dust.
func RoundToCurrencyPrecision(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(GetCurrencyPrecision(currency))
}
