package repositories

import (
	"pclstore/internal/models"
)

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
}
