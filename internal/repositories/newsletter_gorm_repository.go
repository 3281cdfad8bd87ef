package repositories

import (
	"fmt"
	"pclstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNewsletterRepository is a GORM implementation of NewsletterRepository.
type GORMNewsletterRepository struct {
	db *gorm.DB
}

// NewGORMNewsletterRepository creates a new instance of GORMNewsletterRepository.
func NewGORMNewsletterRepository(db *gorm.DB) *GORMNewsletterRepository {
	return &GORMNewsletterRepository{
		db: db,
	}
}

// GetByEmail retrieves a subscription by its email address.
func (r *GORMNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscription, error) {
	var subscription models.NewsletterSubscription
	if err := r.db.First(&subscription, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("subscription with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get subscription by email %s: %w", email, err)
	}
	return &subscription, nil
}

// Create creates a new subscription in the database.
func (r *GORMNewsletterRepository) Create(subscription *models.NewsletterSubscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.New().String()
	}
	if err := r.db.Create(subscription).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// SetSubscribed flips the subscribed flag for an email address.
func (r *GORMNewsletterRepository) SetSubscribed(email string, subscribed bool) error {
	res := r.db.Model(&models.NewsletterSubscription{}).Where("email = ?", email).Update("subscribed", subscribed)
	if res.Error != nil {
		return fmt.Errorf("failed to update subscription for %s: %w", email, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("subscription with email %s not found", email)
	}
	return nil
}
