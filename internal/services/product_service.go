package services

import (
	"pclstore/internal/models"
	"pclstore/internal/repositories"
)

// ProductService handles business logic related to the catalog. It is the
// read-only product source the cart uses to construct line items.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductsByCategory retrieves all products in a category.
func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	return s.repo.GetByCategory(category)
}

// LookupVariant retrieves a product variant for adding to the cart. The
// cart never trusts client-supplied names or prices; they come from here.
func (s *ProductService) LookupVariant(variantID string) (*models.ProductVariant, error) {
	return s.repo.GetVariantByID(variantID)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
