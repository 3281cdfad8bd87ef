package repositories

import (
	"fmt"
	"strings"
	"sync"

	"pclstore/internal/models"

	"github.com/google/uuid"
)

// MockCouponRepository is an in-memory implementation of CouponRepository.
type MockCouponRepository struct {
	coupons map[string]models.Coupon
	mu      sync.RWMutex
}

// NewMockCouponRepository creates a new instance of MockCouponRepository.
func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{
		coupons: make(map[string]models.Coupon),
	}
}

// GetByCode returns a coupon by its code, compared case-insensitively.
func (r *MockCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := strings.ToUpper(strings.TrimSpace(code))
	coupon, ok := r.coupons[normalized]
	if !ok {
		return nil, fmt.Errorf("coupon with code %s not found", normalized)
	}
	return &coupon, nil
}

// Create adds a new coupon.
func (r *MockCouponRepository) Create(coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	r.coupons[coupon.Code] = *coupon
	return nil
}
