package cart

import "github.com/shopspring/decimal"

// Policy holds the pricing configuration of the store. The values are read
// from configuration at startup; they are never hard-wired into the
// derivation logic.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	StandardShippingCost  decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPolicy returns the store's standard pricing: free shipping at or
// above 80.00, flat 7.90 shipping below it, 22% VAT.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromFloat(80.00),
		StandardShippingCost:  decimal.NewFromFloat(7.90),
		TaxRate:               decimal.NewFromFloat(0.22),
	}
}

// CalculateTotals derives all monetary fields from the line items and the
// active coupon. It is a pure function: calling it twice with the same
// inputs yields identical totals, and every cart mutation stores its result.
func CalculateTotals(items []LineItem, coupon *Coupon, policy Policy) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// The threshold comparison uses the pre-discount subtotal.
	shipping := policy.StandardShippingCost
	if subtotal.GreaterThanOrEqual(policy.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	discount := decimal.Zero
	if coupon != nil {
		discount = coupon.DiscountAmount
	}

	// Floor the discounted subtotal at zero so an oversized coupon can never
	// produce a negative tax or total.
	discountedSubtotal := subtotal.Sub(discount)
	if discountedSubtotal.IsNegative() {
		discountedSubtotal = decimal.Zero
	}

	tax := discountedSubtotal.Mul(policy.TaxRate)

	return Totals{
		Subtotal:       subtotal,
		Shipping:       shipping,
		Tax:            tax,
		DiscountAmount: discount,
		Total:          discountedSubtotal.Add(shipping).Add(tax),
	}
}
