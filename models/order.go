package models

import (
	"time"

	"github.com/shopspring/decimal"

	"tienda-admin/orderbuilder"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// Order represents a submitted order in the database
type Order struct {
	ID             string                 `json:"id"`
	DraftID        string                 `json:"draftId,omitempty"`
	Status         string                 `json:"status"` // pending, completed, canceled
	Recipient      orderbuilder.Recipient `json:"recipient"`
	Lines          []OrderLine            `json:"lines"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	Discount       decimal.Decimal        `json:"discount"`
	DiscountRuleID string                 `json:"discountRuleId,omitempty"`
	ShippingCharge decimal.Decimal        `json:"shippingCharge"`
	Total          decimal.Decimal        `json:"total"`
	TotalQuantity  int                    `json:"totalQuantity"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// OrderLine is one colour/size cell of an order; Color and Size are empty for products without variants
type OrderLine struct {
	ID          int64           `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderListItem represents an order in a list response
type OrderListItem struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	RecipientName string          `json:"recipientName"`
	City          string          `json:"city,omitempty"`
	Total         decimal.Decimal `json:"total"`
	TotalQuantity int             `json:"totalQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OrderListResponse represents the response for listing orders
type OrderListResponse struct {
	Orders []OrderListItem `json:"orders"`
}

// SubmitDraftResponse represents the response after a draft becomes an order
type SubmitDraftResponse struct {
	OrderID string `json:"orderId"`
	Order   *Order `json:"order"`
}

// IsValidOrderStatus reports whether s is a known order status
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}
