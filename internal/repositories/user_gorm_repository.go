package repositories

import (
	"fmt"

	"pclstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new customer account.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a customer account by its username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first("username = ?", username, fmt.Sprintf("user with username %s", username))
}

// GetByEmail retrieves a customer account by its email address. The checkout
// flow uses this to match guest orders to an existing account.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email, fmt.Sprintf("user with email %s", email))
}

// GetByID retrieves a customer account by its ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	return r.first("id = ?", id, fmt.Sprintf("user with ID %s", id))
}

// UpdateProfile sets the customer's display name and shipping address.
func (r *GORMUserRepository) UpdateProfile(id, name, address string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":    name,
		"address": address,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update profile for user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for profile update", id)
	}
	return nil
}

func (r *GORMUserRepository) first(query string, arg interface{}, desc string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, query, arg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%s not found", desc)
		}
		return nil, fmt.Errorf("failed to get %s: %w", desc, err)
	}
	return &user, nil
}
