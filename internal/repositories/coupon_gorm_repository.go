package repositories

import (
	"fmt"
	"strings"

	"pclstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCouponRepository is a GORM implementation of CouponRepository.
type GORMCouponRepository struct {
	db *gorm.DB
}

// NewGORMCouponRepository creates a new instance of GORMCouponRepository.
func NewGORMCouponRepository(db *gorm.DB) *GORMCouponRepository {
	return &GORMCouponRepository{
		db: db,
	}
}

// GetByCode retrieves a coupon by its code. Codes are stored uppercase and
// compared case-insensitively.
func (r *GORMCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if err := r.db.First(&coupon, "code = ?", normalized).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("coupon with code %s not found", normalized)
		}
		return nil, fmt.Errorf("failed to get coupon by code %s: %w", normalized, err)
	}
	return &coupon, nil
}

// Create creates a new coupon in the database.
func (r *GORMCouponRepository) Create(coupon *models.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if err := r.db.Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}
