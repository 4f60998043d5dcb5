package models

import (
	"github.com/shopspring/decimal"

	"tienda-admin/orderbuilder"
	"tienda-admin/pricing"
)

// CreateDraftRequest represents the optional body for POST /admin/order-drafts
type CreateDraftRequest struct {
	Recipient *orderbuilder.Recipient `json:"recipient,omitempty"`
}

// AddDraftItemRequest represents the request body for adding a configured product to a draft
// Example (color_size): {"productId": "5f0c...", "colors": [{"color": "Negro", "sizes": [{"size": "S", "quantity": 2}, {"size": "M", "quantity": 0}]}]}
// Example (none): {"productId": "7a1d...", "quantity": 3, "overridePrice": "12.50"}
type AddDraftItemRequest struct {
	ProductID     string                        `json:"productId"`
	Quantity      int                           `json:"quantity,omitempty"`
	Colors        []orderbuilder.ColorSelection `json:"colors,omitempty"`
	OverridePrice *decimal.Decimal              `json:"overridePrice,omitempty"`
}

// UpdateChargesRequest represents the request body for PUT /admin/order-drafts/{id}/charges
type UpdateChargesRequest struct {
	Discount       decimal.Decimal `json:"discount"`
	ShippingCharge decimal.Decimal `json:"shippingCharge"`
}

// DraftResponse is a draft together with its derived totals
type DraftResponse struct {
	orderbuilder.Draft
	Totals orderbuilder.Aggregate `json:"totals"`
}

// AddDraftItemResponse lists the line items a single add produced
type AddDraftItemResponse struct {
	Draft DraftResponse           `json:"draft"`
	Added []orderbuilder.LineItem `json:"added"`
}

// AutoDiscountResponse represents the result of applying the discount rules to a draft
type AutoDiscountResponse struct {
	Draft      DraftResponse      `json:"draft"`
	Suggestion pricing.Suggestion `json:"suggestion"`
}

func NewDraftResponse(d orderbuilder.Draft) DraftResponse {
	return DraftResponse{Draft: d, Totals: d.Totals()}
}
