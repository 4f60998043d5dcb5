package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tienda-admin/utils"
	"tienda-admin/variants"
)

// VariantRepository persists a product's attribute groups and combinations
type VariantRepository struct {
	db *sql.DB
}

// NewVariantRepository creates a new VariantRepository
func NewVariantRepository(conn *sql.DB) *VariantRepository {
	return &VariantRepository{db: conn}
}

// Ensure VariantRepository implements VariantRepositoryInterface
var _ VariantRepositoryInterface = (*VariantRepository)(nil)

// GetMatrix loads the saved groups and combinations of a product
func (r *VariantRepository) GetMatrix(ctx context.Context, productID string) (variants.Matrix, error) {
	var groupsJSON []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT attribute_groups FROM products WHERE id = $1`, productID,
	).Scan(&groupsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return variants.Matrix{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return variants.Matrix{}, fmt.Errorf("failed to get attribute groups: %w", err)
	}

	var groups []variants.AttributeGroup
	if err := json.Unmarshal(groupsJSON, &groups); err != nil {
		return variants.Matrix{}, fmt.Errorf("failed to decode attribute groups: %w", err)
	}

	combos, err := loadCombinations(ctx, r.db, productID)
	if err != nil {
		return variants.Matrix{}, err
	}

	// Rows are reconciled against the groups so a stale row set never leaks out.
	return variants.NewMatrix(groups, combos), nil
}

// SaveMatrix replaces the product's groups and variant rows atomically
func (r *VariantRepository) SaveMatrix(ctx context.Context, productID string, matrix variants.Matrix) error {
	zap.L().Info("📦 SaveMatrix", zap.String("productId", productID),
		zap.Int("groups", len(matrix.Groups)), zap.Int("combinations", len(matrix.Combinations)))

	groupsJSON, err := json.Marshal(matrix.Groups)
	if err != nil {
		return fmt.Errorf("failed to encode attribute groups: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		zap.L().Error("❌ SaveMatrix: error starting transaction", zap.Error(err))
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var prefix string
	err = tx.QueryRowContext(ctx, `
		UPDATE products SET attribute_groups = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING sku_prefix
	`, string(groupsJSON), productID).Scan(&prefix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("failed to update attribute groups: %w", err)
	}

	if err := replaceVariantRows(ctx, tx, productID, prefix, matrix); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	zap.L().Info("✅ SaveMatrix: saved", zap.String("productId", productID), zap.Int("totalStock", matrix.TotalStock()))
	return nil
}

func replaceVariantRows(ctx context.Context, tx *sql.Tx, productID, prefix string, matrix variants.Matrix) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear variants: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_variants (product_id, combination_key, assignment, sku, stock_quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare variant insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range matrix.Combinations {
		assignment, err := json.Marshal(c.Assignment)
		if err != nil {
			return fmt.Errorf("failed to encode assignment: %w", err)
		}
		sku := utils.VariantSKU(prefix, matrix.Groups, c.Assignment)
		if _, err := stmt.ExecContext(ctx, productID, c.Assignment.Key(), string(assignment), sku, c.StockQuantity, i); err != nil {
			zap.L().Error("❌ replaceVariantRows: insert failed", zap.String("sku", sku), zap.Error(err))
			return fmt.Errorf("failed to insert variant %s: %w", sku, err)
		}
	}
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func loadCombinations(ctx context.Context, q queryer, productID string) ([]variants.Combination, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT assignment, stock_quantity
		FROM product_variants
		WHERE product_id = $1
		ORDER BY position ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}
	defer rows.Close()

	var combos []variants.Combination
	for rows.Next() {
		var raw []byte
		var c variants.Combination
		if err := rows.Scan(&raw, &c.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		if err := json.Unmarshal(raw, &c.Assignment); err != nil {
			return nil, fmt.Errorf("failed to decode assignment: %w", err)
		}
		combos = append(combos, c)
	}
	return combos, rows.Err()
}
