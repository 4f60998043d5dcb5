package models

import (
	"fmt"

	"tienda-admin/variants"
)

// VariantCombination is one stock-keeping row of a product's matrix
type VariantCombination struct {
	Assignment    variants.Assignment `json:"assignment"`
	Label         string              `json:"label"`
	SKU           string              `json:"sku"`
	StockQuantity int                 `json:"stockQuantity"`
}

// VariantMatrixResponse represents a product's attribute groups and combinations
// Example response:
// {
//   "productId": "5f0c...",
//   "groups": [{"name": "Color", "values": ["Rojo"]}, {"name": "Talla", "values": ["S", "M"]}],
//   "combinations": [
//     {"assignment": {"Color": "Rojo", "Talla": "S"}, "label": "Rojo / S", "sku": "BC-RO-S", "stockQuantity": 4}
//   ],
//   "totalStock": 4
// }
type VariantMatrixResponse struct {
	ProductID    string                    `json:"productId,omitempty"`
	Groups       []variants.AttributeGroup `json:"groups"`
	Combinations []VariantCombination      `json:"combinations"`
	TotalStock   int                       `json:"totalStock"`
}

// PreviewVariantsRequest regenerates a matrix without saving it
type PreviewVariantsRequest struct {
	SKUPrefix string                    `json:"skuPrefix,omitempty"`
	Groups    []variants.AttributeGroup `json:"groups"`
	Previous  []variants.Combination    `json:"previous,omitempty"`
}

// ReplaceVariantsRequest represents the request body for PUT /admin/products/{id}/variants
type ReplaceVariantsRequest struct {
	Groups       []variants.AttributeGroup `json:"groups"`
	Combinations []variants.Combination    `json:"combinations,omitempty"`
}

// Event types accepted by VariantEventRequest
const (
	VariantEventAddGroup    = "add_group"
	VariantEventRemoveGroup = "remove_group"
	VariantEventAddValue    = "add_value"
	VariantEventRemoveValue = "remove_value"
	VariantEventSetStock    = "set_stock"
)

// VariantEventRequest is one edit of the matrix
// Example: {"type": "add_value", "group": "Talla", "value": "XL"}
type VariantEventRequest struct {
	Type       string              `json:"type"`
	Name       string              `json:"name,omitempty"`
	Group      string              `json:"group,omitempty"`
	Value      string              `json:"value,omitempty"`
	Assignment variants.Assignment `json:"assignment,omitempty"`
	Quantity   int                 `json:"quantity,omitempty"`
}

// ApplyVariantEventsRequest represents the request body for POST /admin/products/{id}/variants/events
type ApplyVariantEventsRequest struct {
	Events []VariantEventRequest `json:"events"`
}

// ToEvent converts the wire form into a matrix event
func (e VariantEventRequest) ToEvent() (variants.Event, error) {
	switch e.Type {
	case VariantEventAddGroup:
		return variants.AddGroup{Name: e.Name}, nil
	case VariantEventRemoveGroup:
		return variants.RemoveGroup{Name: e.Name}, nil
	case VariantEventAddValue:
		return variants.AddValue{Group: e.Group, Value: e.Value}, nil
	case VariantEventRemoveValue:
		return variants.RemoveValue{Group: e.Group, Value: e.Value}, nil
	case VariantEventSetStock:
		return variants.SetStock{Assignment: e.Assignment, Quantity: e.Quantity}, nil
	}
	return nil, fmt.Errorf("%w: %q", variants.ErrUnknownEvent, e.Type)
}

// Events converts every request event, stopping at the first unknown type
func (r ApplyVariantEventsRequest) ToEvents() ([]variants.Event, error) {
	events := make([]variants.Event, 0, len(r.Events))
	for i, e := range r.Events {
		ev, err := e.ToEvent()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
