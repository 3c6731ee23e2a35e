// Package money converts the engine's float64 arithmetic into exact
// two-decimal amounts at the API boundary. Reports compute in float64 with an
// epsilon tolerance; responses round once, here, so clients never see
// artifacts like 299.99999999999994.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to two decimal places, half away from zero.
func Round2(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// Round2Ptr rounds through a nil-able percent or amount.
func Round2Ptr(amount *float64) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	d := Round2(*amount)
	return &d
}
