package cart

import "errors"

var (
	// ErrInvalidLineItem is returned when an item with a missing id, a
	// non-positive quantity or a negative unit price is added. The cart is
	// left unchanged.
	ErrInvalidLineItem = errors.New("invalid line item")

	// ErrInvalidCoupon is returned when a coupon with an empty code or a
	// negative discount amount is applied. The cart is left unchanged.
	ErrInvalidCoupon = errors.New("invalid coupon")
)
