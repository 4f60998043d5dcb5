package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tienda-admin/models"
	"tienda-admin/repository"
	"tienda-admin/utils"
	"tienda-admin/variants"
)

// VariantService edits and persists product variant matrices
type VariantService struct {
	products repository.ProductRepositoryInterface
	variants repository.VariantRepositoryInterface
}

// NewVariantService creates a new VariantService
func NewVariantService(products repository.ProductRepositoryInterface, variantRepo repository.VariantRepositoryInterface) *VariantService {
	return &VariantService{products: products, variants: variantRepo}
}

// Preview regenerates a matrix from groups without touching storage
func (s *VariantService) Preview(req models.PreviewVariantsRequest) (*models.VariantMatrixResponse, error) {
	m, err := variants.Build(req.Groups, req.Previous)
	if err != nil {
		return nil, err
	}
	return matrixResponse("", req.SKUPrefix, m), nil
}

func (s *VariantService) Get(ctx context.Context, productID string) (*models.VariantMatrixResponse, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	m, err := s.variants.GetMatrix(ctx, productID)
	if err != nil {
		return nil, err
	}
	return matrixResponse(productID, product.SKUPrefix, m), nil
}

// ApplyEvents loads the matrix, folds the events through the reducer and saves the result.
// When any event fails nothing is saved.
func (s *VariantService) ApplyEvents(ctx context.Context, productID string, events []variants.Event) (*models.VariantMatrixResponse, error) {
	zap.L().Info("📥 ApplyEvents: received", zap.String("productId", productID), zap.Int("events", len(events)))

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	current, err := s.variants.GetMatrix(ctx, productID)
	if err != nil {
		return nil, err
	}

	next, err := current.ApplyAll(events)
	if err != nil {
		zap.L().Warn("❌ ApplyEvents: rejected", zap.String("productId", productID), zap.Error(err))
		return nil, err
	}

	if err := s.variants.SaveMatrix(ctx, productID, next); err != nil {
		return nil, fmt.Errorf("failed to save variants: %w", err)
	}
	zap.L().Info("✅ ApplyEvents: saved", zap.String("productId", productID),
		zap.Int("combinations", len(next.Combinations)))
	return matrixResponse(productID, product.SKUPrefix, next), nil
}

// Replace swaps the groups wholesale; stock is taken from combos where they still match
func (s *VariantService) Replace(ctx context.Context, productID string, groups []variants.AttributeGroup, combos []variants.Combination) (*models.VariantMatrixResponse, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	m, err := variants.Build(groups, combos)
	if err != nil {
		return nil, err
	}
	if err := s.variants.SaveMatrix(ctx, productID, m); err != nil {
		return nil, fmt.Errorf("failed to save variants: %w", err)
	}
	return matrixResponse(productID, product.SKUPrefix, m), nil
}

func matrixResponse(productID, prefix string, m variants.Matrix) *models.VariantMatrixResponse {
	resp := &models.VariantMatrixResponse{
		ProductID:    productID,
		Groups:       m.Groups,
		Combinations: make([]models.VariantCombination, 0, len(m.Combinations)),
		TotalStock:   m.TotalStock(),
	}
	for _, c := range m.Combinations {
		resp.Combinations = append(resp.Combinations, models.VariantCombination{
			Assignment:    c.Assignment,
			Label:         c.Assignment.Label(m.Groups),
			SKU:           utils.VariantSKU(prefix, m.Groups, c.Assignment),
			StockQuantity: c.StockQuantity,
		})
	}
	return resp
}
