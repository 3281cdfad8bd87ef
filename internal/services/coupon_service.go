package services

import (
	"fmt"
	"strings"
	"time"

	"pclstore/internal/models"
	"pclstore/internal/repositories"

	"github.com/shopspring/decimal"
)

// CouponValidation is the outcome of checking a code against the current
// cart subtotal. When Valid is true, DiscountAmount carries the resolved
// absolute discount the cart should apply; percentage-to-amount conversion
// happens here, never in the cart.
type CouponValidation struct {
	Valid          bool            `json:"valid"`
	Code           string          `json:"code,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Reason         string          `json:"reason,omitempty"`
}

// CouponService decides whether a coupon code is redeemable and what
// absolute discount it yields.
type CouponService struct {
	repo repositories.CouponRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{
		repo: repo,
	}
}

// Validate checks a code against the given subtotal. Business rejections
// (unknown code, expired, below minimum order) come back as Valid=false
// with a reason; an error is returned only for storage failures.
func (s *CouponService) Validate(code string, subtotal decimal.Decimal) (*CouponValidation, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return &CouponValidation{Valid: false, Reason: "coupon code is required"}, nil
	}

	coupon, err := s.repo.GetByCode(normalized)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return &CouponValidation{Valid: false, Reason: "unknown coupon code"}, nil
		}
		return nil, fmt.Errorf("failed to look up coupon %s: %w", normalized, err)
	}

	if !coupon.Active {
		return &CouponValidation{Valid: false, Reason: "coupon is no longer active"}, nil
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return &CouponValidation{Valid: false, Reason: "coupon has expired"}, nil
	}
	if subtotal.LessThan(coupon.MinOrderValue) {
		return &CouponValidation{
			Valid:  false,
			Reason: fmt.Sprintf("order subtotal is below the coupon minimum of %s", coupon.MinOrderValue.StringFixed(2)),
		}, nil
	}

	discount := resolveDiscount(coupon, subtotal)

	// The cart clamps during derivation too, but the resolved amount handed
	// out here never exceeds the subtotal it was validated against.
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	return &CouponValidation{
		Valid:          true,
		Code:           coupon.Code,
		DiscountAmount: discount,
	}, nil
}

// resolveDiscount converts a coupon record into an absolute currency amount
// for the given subtotal.
func resolveDiscount(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		return subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100))
	case models.DiscountTypeFixed:
		return coupon.Value
	default:
		return decimal.Zero
	}
}
