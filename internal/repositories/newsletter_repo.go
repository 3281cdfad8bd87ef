package repositories

import (
	"pclstore/internal/models"
)

// NewsletterRepository defines the interface for newsletter subscription
// data access.
type NewsletterRepository interface {
	GetByEmail(email string) (*models.NewsletterSubscription, error)
	Create(subscription *models.NewsletterSubscription) error
	SetSubscribed(email string, subscribed bool) error
}
