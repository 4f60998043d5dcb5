package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/utils"
	"tienda-admin/variants"
)

// OrderRepository handles database operations for submitted orders
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(conn *sql.DB) *OrderRepository {
	return &OrderRepository{db: conn}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create stores the order and its lines and decrements variant stock.
// All operations are performed atomically in a single transaction
func (r *OrderRepository) Create(ctx context.Context, payload orderbuilder.SubmissionPayload) (*models.Order, error) {
	orderID := uuid.NewString()
	zap.L().Info("📦 CreateOrder", zap.String("orderId", orderID), zap.String("draftId", payload.DraftID),
		zap.Int("lines", len(payload.Lines)))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		zap.L().Error("❌ CreateOrder: error starting transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, draft_id, status, recipient_name, recipient_phone, street_address, city, notes,
		                    subtotal, discount, discount_rule_id, shipping_charge, total, total_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
	`, orderID, payload.DraftID, models.OrderStatusPending,
		payload.Recipient.Name, payload.Recipient.Phone, payload.Recipient.StreetAddress,
		payload.Recipient.City, payload.Recipient.Notes,
		payload.Subtotal, payload.Discount, payload.DiscountRuleID, payload.ShippingCharge,
		payload.Total, payload.TotalQuantity)
	if err != nil {
		zap.L().Error("❌ CreateOrder: error inserting order", zap.Error(err))
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_lines (order_id, product_id, product_name, color, size, qty, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare order line insert: %w", err)
	}
	defer lineStmt.Close()

	for _, line := range payload.Lines {
		for _, unit := range line.Units {
			lineTotal := line.PerUnitPrice.Mul(decimal.NewFromInt(int64(unit.Quantity)))
			if _, err := lineStmt.ExecContext(ctx, orderID, line.ProductID, line.ProductName,
				unit.Color, unit.Size, unit.Quantity, line.PerUnitPrice, lineTotal); err != nil {
				zap.L().Error("❌ CreateOrder: error inserting line", zap.String("productId", line.ProductID), zap.Error(err))
				return nil, fmt.Errorf("failed to insert order line: %w", err)
			}
			if err := decrementStock(ctx, tx, line.ProductID, unit); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		zap.L().Error("❌ CreateOrder: error committing transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("✅ CreateOrder: order created", zap.String("orderId", orderID),
		zap.String("total", payload.Total.String()))
	return r.GetByID(ctx, orderID)
}

// decrementStock takes units out of the matching variant row. Products without variants
// floor their flat stock at zero instead of failing.
func decrementStock(ctx context.Context, tx *sql.Tx, productID string, unit orderbuilder.SubmissionUnit) error {
	if unit.Color == "" && unit.Size == "" {
		_, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2
		`, unit.Quantity, productID)
		if err != nil {
			return fmt.Errorf("failed to update product stock: %w", err)
		}
		return nil
	}

	var groupsJSON []byte
	err := tx.QueryRowContext(ctx,
		`SELECT attribute_groups FROM products WHERE id = $1 FOR UPDATE`, productID,
	).Scan(&groupsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("failed to lock product: %w", err)
	}
	var groups []variants.AttributeGroup
	if err := json.Unmarshal(groupsJSON, &groups); err != nil {
		return fmt.Errorf("failed to decode attribute groups: %w", err)
	}
	colorAxis, sizeAxis, ok := utils.ColorSizeAxes(groups)
	if !ok {
		return fmt.Errorf("%w: product %s has no colour/size axes", orderbuilder.ErrUnknownVariant, productID)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE product_variants SET stock_quantity = stock_quantity - $1
		WHERE id = (
			SELECT id FROM product_variants
			WHERE product_id = $2
			  AND lower(assignment->>$3) = lower($4)
			  AND lower(assignment->>$5) = lower($6)
			  AND stock_quantity >= $1
			ORDER BY position ASC
			LIMIT 1
		)
	`, unit.Quantity, productID, colorAxis, unit.Color, sizeAxis, unit.Size)
	if err != nil {
		return fmt.Errorf("failed to decrement variant stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		zap.L().Warn("⚠️ decrementStock: not enough stock", zap.String("productId", productID),
			zap.String("color", unit.Color), zap.String("size", unit.Size), zap.Int("qty", unit.Quantity))
		return fmt.Errorf("%w: %s %s/%s", orderbuilder.ErrInsufficientStock, productID, unit.Color, unit.Size)
	}
	return nil
}

// GetByID retrieves an order with its lines
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, draft_id, status, recipient_name, recipient_phone, street_address, city, notes,
		       subtotal, discount, discount_rule_id, shipping_charge, total, total_quantity, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&o.ID, &o.DraftID, &o.Status,
		&o.Recipient.Name, &o.Recipient.Phone, &o.Recipient.StreetAddress, &o.Recipient.City, &o.Recipient.Notes,
		&o.Subtotal, &o.Discount, &o.DiscountRuleID, &o.ShippingCharge, &o.Total, &o.TotalQuantity, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, product_name, color, size, qty, unit_price, line_total
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	o.Lines = []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.Color, &l.Size, &l.Qty, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orders newest first, optionally filtered by status
func (r *OrderRepository) List(ctx context.Context, status string) ([]models.OrderListItem, error) {
	query := `
		SELECT id, status, recipient_name, city, total, total_quantity, created_at
		FROM orders
	`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.OrderListItem{}
	for rows.Next() {
		var o models.OrderListItem
		if err := rows.Scan(&o.ID, &o.Status, &o.RecipientName, &o.City, &o.Total, &o.TotalQuantity, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
