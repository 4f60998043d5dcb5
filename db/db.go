package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// DB holds the database connection
var DB *sql.DB

// InitDB opens the connection described by connStr and checks it with a ping.
func InitDB(ctx context.Context, connStr string) error {
	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = conn
	zap.L().Info("✓ Database connection established successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		sku_prefix TEXT NOT NULL DEFAULT '',
		base_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		variant_type TEXT NOT NULL DEFAULT 'none',
		attribute_groups JSONB NOT NULL DEFAULT '[]'::jsonb,
		image_drive_file_id TEXT NOT NULL DEFAULT '',
		stock INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS product_variants (
		id BIGSERIAL PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		combination_key TEXT NOT NULL,
		assignment JSONB NOT NULL,
		sku TEXT NOT NULL,
		stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		position INT NOT NULL DEFAULT 0,
		UNIQUE (product_id, combination_key)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		draft_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		recipient_name TEXT NOT NULL,
		recipient_phone TEXT NOT NULL DEFAULT '',
		street_address TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		subtotal NUMERIC(12,2) NOT NULL,
		discount NUMERIC(12,2) NOT NULL DEFAULT 0,
		discount_rule_id TEXT NOT NULL DEFAULT '',
		shipping_charge NUMERIC(12,2) NOT NULL DEFAULT 0,
		total NUMERIC(12,2) NOT NULL,
		total_quantity INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id BIGSERIAL PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		product_name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		size TEXT NOT NULL DEFAULT '',
		qty INT NOT NULL CHECK (qty > 0),
		unit_price NUMERIC(12,2) NOT NULL,
		line_total NUMERIC(12,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_order_lines_order_id ON order_lines(order_id)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	zap.L().Info("✓ Database schema ready")
	return nil
}
