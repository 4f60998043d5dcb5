package models

import (
	"time"

	"github.com/shopspring/decimal"

	"tienda-admin/orderbuilder"
	"tienda-admin/variants"
)

// Product represents a product in the database
type Product struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	Description      string                    `json:"description,omitempty"`
	SKUPrefix        string                    `json:"skuPrefix,omitempty"`
	BasePrice        decimal.Decimal           `json:"basePrice"`
	VariantType      orderbuilder.VariantType  `json:"variantType"`
	AttributeGroups  []variants.AttributeGroup `json:"attributeGroups"`
	ImageDriveFileID string                    `json:"imageDriveFileId,omitempty"`
	Stock            int                       `json:"stock"`      // flat stock for products without variants
	TotalStock       int                       `json:"totalStock"` // Stock, or the sum over variant combinations
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

// CreateProductRequest represents the request body for creating a product
// Example:
// {
//   "name": "Buso capota",
//   "basePrice": "45000",
//   "variantType": "color_size",
//   "skuPrefix": "BC",
//   "attributeGroups": [{"name": "Color", "values": ["Rojo", "Negro"]}, {"name": "Talla", "values": ["S", "M"]}],
//   "combinations": [{"assignment": {"Color": "Rojo", "Talla": "S"}, "stockQuantity": 4}]
// }
// Combinations only carry stock; the full matrix is regenerated from the groups.
type CreateProductRequest struct {
	Name             string                    `json:"name"`
	Description      string                    `json:"description,omitempty"`
	SKUPrefix        string                    `json:"skuPrefix,omitempty"`
	BasePrice        decimal.Decimal           `json:"basePrice"`
	VariantType      orderbuilder.VariantType  `json:"variantType"`
	Stock            int                       `json:"stock,omitempty"`
	ImageDriveFileID string                    `json:"imageDriveFileId,omitempty"`
	AttributeGroups  []variants.AttributeGroup `json:"attributeGroups,omitempty"`
	Combinations     []variants.Combination    `json:"combinations,omitempty"`
}

// ProductListResponse represents the response for listing products
type ProductListResponse struct {
	Products []Product `json:"products"`
}
