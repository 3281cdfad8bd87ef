package models

import "gorm.io/gorm"

// NewsletterSubscription records an email address subscribed to the store
// newsletter. Unsubscribing flips Subscribed off instead of deleting the
// row, so a resubscribe can be detected and reactivated.
type NewsletterSubscription struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name       string `json:"name,omitempty" gorm:"type:varchar(100)"`
	Subscribed bool   `json:"subscribed"`
	gorm.Model
}
