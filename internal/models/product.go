package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a handmade ceramics piece in the catalog.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string           `json:"name" validate:"required,min=3,max=100"`
	Slug        string           `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	Category    string           `json:"category" validate:"required"` // e.g. "tazze", "mugs", "shots", "piatti", "borse"
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(16,2)"`
	Stock       int              `json:"stock" validate:"gte=0"`
	ImageURL    string           `json:"image_url"`
	IsNew       bool             `json:"is_new"`
	BestSeller  bool             `json:"best_seller"`
	Variants    []ProductVariant `json:"variants" gorm:"foreignKey:ProductID"`
	gorm.Model                   // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductVariant is a purchasable color/size combination of a product. The
// variant id is what ends up as the line-item id in the cart.
type ProductVariant struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID string          `json:"product_id" gorm:"index;type:varchar(36)"`
	SKU       string          `json:"sku" gorm:"uniqueIndex;type:varchar(64)"`
	Color     string          `json:"color" validate:"required"`
	Size      string          `json:"size,omitempty"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(16,2)"`
	Stock     int             `json:"stock" validate:"gte=0"`
	ImageURL  string          `json:"image_url"`
	gorm.Model
}
