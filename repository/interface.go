package repository

import (
	"context"
	"errors"
	"time"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/variants"
)

// ErrNotFound is returned when a product, draft or order does not exist
var ErrNotFound = errors.New("not found")

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	Create(ctx context.Context, product *models.Product, matrix variants.Matrix) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, search string) ([]models.Product, error)
	Lookup(ctx context.Context, id string) (orderbuilder.Product, error)
}

// VariantRepositoryInterface defines the contract for variant matrix persistence
type VariantRepositoryInterface interface {
	GetMatrix(ctx context.Context, productID string) (variants.Matrix, error)
	SaveMatrix(ctx context.Context, productID string, matrix variants.Matrix) error
}

// OrderRepositoryInterface defines the contract for submitted orders
type OrderRepositoryInterface interface {
	Create(ctx context.Context, payload orderbuilder.SubmissionPayload) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, status string) ([]models.OrderListItem, error)
}

// ReportRepositoryInterface defines the contract for sales reporting
type ReportRepositoryInterface interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*models.SalesReport, error)
}

// DraftRepositoryInterface stores in-progress orders
type DraftRepositoryInterface interface {
	Save(ctx context.Context, draft orderbuilder.Draft) error
	Get(ctx context.Context, id string) (orderbuilder.Draft, error)
	Delete(ctx context.Context, id string) error
}
