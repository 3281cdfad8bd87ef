package repositories

import (
	"pclstore/internal/models"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	GetVariantByID(variantID string) (*models.ProductVariant, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
