package cart

import "github.com/shopspring/decimal"

// LineItem is one entry in the cart: a chosen product variant and quantity.
type LineItem struct {
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	Image     string          `json:"image"`
	Color     string          `json:"color"`
	Size      string          `json:"size,omitempty"`
}

// ItemKey is the merge identity of a line item. Two additions with the same
// key merge quantities instead of creating a duplicate row.
type ItemKey struct {
	ID    string
	Color string
	Size  string
}

// Key returns the merge identity of the line item.
func (li LineItem) Key() ItemKey {
	return ItemKey{ID: li.ID, Color: li.Color, Size: li.Size}
}

// Coupon is the single active discount applied to the cart. DiscountAmount is
// an already-resolved absolute currency amount; percentage-to-amount
// conversion is the coupon validator's job, before the cart ever sees it.
type Coupon struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// Totals holds the derived monetary fields of the cart. They are pure
// functions of (line items, coupon, policy) and are never set directly.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Shipping       decimal.Decimal `json:"shipping"`
	Tax            decimal.Decimal `json:"tax"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// Snapshot is a read-only copy of the cart state, used both for display and
// as the persisted JSON record.
type Snapshot struct {
	Items      []LineItem `json:"items"`
	CouponCode string     `json:"coupon_code,omitempty"`
	Totals
}

// IsEmpty reports whether the snapshot contains no line items.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}
