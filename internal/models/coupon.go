package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon discount types. Percentage coupons are resolved to an absolute
// amount by the coupon service before the cart ever sees them.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Coupon represents a promotional code redeemable against the cart subtotal.
type Coupon struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code          string          `json:"code" gorm:"uniqueIndex;type:varchar(64)" validate:"required,min=3,max=64"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=percentage fixed"`
	Value         decimal.Decimal `json:"value" gorm:"type:decimal(16,2)"` // percent for "percentage", amount for "fixed"
	MinOrderValue decimal.Decimal `json:"min_order_value" gorm:"type:decimal(16,2)"`
	Active        bool            `json:"active"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	gorm.Model
}
