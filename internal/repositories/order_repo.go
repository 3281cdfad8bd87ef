package repositories

import (
	"pclstore/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByPaymentIntentID(intentID string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	UpdatePaymentStatus(id string, paymentStatus string) error
	// Deletion of orders is intentionally not supported.
}
