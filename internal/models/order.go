package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem represents a single item within an order. It is a snapshot of a
// cart line item at checkout time; the price is the price at the time of
// order, not a live catalog reference.
type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string          `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Size      string          `json:"size,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(16,2)"`
	Quantity  int             `json:"quantity"`
}

// Order represents a customer order with the totals breakdown frozen from
// the cart at checkout time.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id,omitempty" gorm:"index;type:varchar(36)"`
	CartID          string          `json:"-" gorm:"type:varchar(64)"` // originating cart, cleared once payment is confirmed
	Email           string          `json:"email"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:decimal(16,2)"`
	Shipping        decimal.Decimal `json:"shipping" gorm:"type:decimal(16,2)"`
	Tax             decimal.Decimal `json:"tax" gorm:"type:decimal(16,2)"`
	DiscountAmount  decimal.Decimal `json:"discount_amount" gorm:"type:decimal(16,2)"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(16,2)"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	Status          string          `json:"status"` // e.g., "pending", "processing", "shipped", "delivered", "cancelled"
	PaymentIntentID string          `json:"-" gorm:"index;type:varchar(64)"`
	PaymentStatus   string          `json:"payment_status"` // "pending", "completed", "failed", "refunded"
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
