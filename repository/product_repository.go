package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/utils"
	"tienda-admin/variants"
)

// ProductRepository handles database operations for products
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(conn *sql.DB) *ProductRepository {
	return &ProductRepository{db: conn}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `
	p.id, p.name, p.description, p.sku_prefix, p.base_price, p.variant_type,
	p.attribute_groups, p.image_drive_file_id, p.stock,
	CASE WHEN p.variant_type = 'none' THEN p.stock
	     ELSE COALESCE((SELECT SUM(v.stock_quantity) FROM product_variants v WHERE v.product_id = p.id), 0)
	END AS total_stock,
	p.created_at, p.updated_at`

// Create inserts the product and its variant rows in one transaction
func (r *ProductRepository) Create(ctx context.Context, product *models.Product, matrix variants.Matrix) error {
	zap.L().Info("📦 CreateProduct", zap.String("id", product.ID), zap.String("name", product.Name))

	groupsJSON, err := json.Marshal(matrix.Groups)
	if err != nil {
		return fmt.Errorf("failed to encode attribute groups: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		zap.L().Error("❌ CreateProduct: error starting transaction", zap.Error(err))
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (id, name, description, sku_prefix, base_price, variant_type,
		                      attribute_groups, image_drive_file_id, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Description, product.SKUPrefix, product.BasePrice,
		string(product.VariantType), string(groupsJSON), product.ImageDriveFileID, product.Stock,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		zap.L().Error("❌ CreateProduct: error inserting product", zap.Error(err))
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if err := replaceVariantRows(ctx, tx, product.ID, product.SKUPrefix, matrix); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	product.AttributeGroups = matrix.Groups
	product.TotalStock = product.Stock
	if product.VariantType != orderbuilder.VariantNone {
		product.TotalStock = matrix.TotalStock()
	}
	zap.L().Info("✅ CreateProduct: product created",
		zap.String("id", product.ID), zap.Int("combinations", len(matrix.Combinations)))
	return nil
}

// GetByID retrieves a product by its ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// List returns products ordered by name, optionally filtered by a case-insensitive name search
func (r *ProductRepository) List(ctx context.Context, search string) ([]models.Product, error) {
	zap.L().Debug("🔍 ListProducts", zap.String("search", search))

	query := `SELECT ` + productColumns + ` FROM products p`
	var args []interface{}
	if s := strings.TrimSpace(search); s != "" {
		query += ` WHERE p.name ILIKE $1 OR p.sku_prefix ILIKE $1`
		args = append(args, "%"+s+"%")
	}
	query += ` ORDER BY p.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Lookup returns the pricing view of a product. For color_size products every saved
// combination with a colour and a size becomes a stock ceiling; extra axes are summed.
func (r *ProductRepository) Lookup(ctx context.Context, id string) (orderbuilder.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return orderbuilder.Product{}, err
	}

	out := orderbuilder.Product{
		ID:          p.ID,
		Name:        p.Name,
		BasePrice:   p.BasePrice,
		VariantType: p.VariantType,
	}
	if p.VariantType != orderbuilder.VariantColorSize {
		return out, nil
	}

	combos, err := loadCombinations(ctx, r.db, id)
	if err != nil {
		return orderbuilder.Product{}, err
	}
	out.Variants = ceilings(p.AttributeGroups, combos)
	return out, nil
}

// ceilings folds combinations into per colour/size stock, keeping matrix order.
func ceilings(groups []variants.AttributeGroup, combos []variants.Combination) []orderbuilder.ColorVariant {
	colorAxis, sizeAxis, ok := utils.ColorSizeAxes(groups)
	if !ok {
		return nil
	}

	var out []orderbuilder.ColorVariant
	colorIdx := make(map[string]int)
	for _, c := range combos {
		color, size := c.Assignment[colorAxis], c.Assignment[sizeAxis]
		ci, seen := colorIdx[color]
		if !seen {
			ci = len(out)
			colorIdx[color] = ci
			out = append(out, orderbuilder.ColorVariant{Color: color})
		}

		found := false
		for si := range out[ci].Sizes {
			if out[ci].Sizes[si].Size == size {
				out[ci].Sizes[si].Stock += c.StockQuantity
				found = true
				break
			}
		}
		if !found {
			out[ci].Sizes = append(out[ci].Sizes, orderbuilder.SizeStock{Size: size, Stock: c.StockQuantity})
		}
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var variantType string
	var groupsJSON []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.SKUPrefix, &p.BasePrice, &variantType,
		&groupsJSON, &p.ImageDriveFileID, &p.Stock, &p.TotalStock,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.VariantType = orderbuilder.VariantType(variantType)
	p.AttributeGroups = []variants.AttributeGroup{}
	if len(groupsJSON) > 0 {
		if err := json.Unmarshal(groupsJSON, &p.AttributeGroups); err != nil {
			return nil, fmt.Errorf("failed to decode attribute groups: %w", err)
		}
	}
	return &p, nil
}
