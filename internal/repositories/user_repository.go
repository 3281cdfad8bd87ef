package repositories

import "pclstore/internal/models"

// UserRepository defines the interface for customer account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// UpdateProfile sets the customer's shipping details.
	UpdateProfile(id, name, address string) error
}
