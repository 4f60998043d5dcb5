// Package orderbuilder turns configured product selections into priced order line items
// and keeps the running totals of an in-progress order.
package orderbuilder

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VariantType string

const (
	VariantNone      VariantType = "none"
	VariantColorSize VariantType = "color_size"
)

// Product is the catalogue view needed to price a selection.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	VariantType VariantType     `json:"variantType"`
	Variants    []ColorVariant  `json:"variants,omitempty"`
}

// ColorVariant lists the sizes offered for one colour with their stock ceilings.
type ColorVariant struct {
	Color string      `json:"color"`
	Sizes []SizeStock `json:"sizes"`
}

type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type SizeQuantity struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type ColorSelection struct {
	Color string         `json:"color"`
	Sizes []SizeQuantity `json:"sizes"`
}

// Selection is one configured product about to be added to an order.
// OverridePrice, when set and non-negative, replaces the product's base price.
type Selection struct {
	Product       Product
	Quantity      int
	Colors        []ColorSelection
	OverridePrice *decimal.Decimal
}

type VariantAssignment struct {
	Color string         `json:"color"`
	Sizes []SizeQuantity `json:"sizes"`
}

type LineItem struct {
	ID                 string              `json:"id"`
	ProductID          string              `json:"productId"`
	ProductName        string              `json:"productName"`
	VariantAssignments []VariantAssignment `json:"variantAssignments,omitempty"`
	PerUnitPrice       decimal.Decimal     `json:"perUnitPrice"`
	TotalQuantity      int                 `json:"totalQuantity"`
	TotalPrice         decimal.Decimal     `json:"totalPrice"`
}

// MaxQuantity bounds the units a single line item may carry.
const MaxQuantity = 1_000_000

var newLineID = uuid.NewString

// UnitPrice is the override when present and non-negative, else the base price.
func (s Selection) UnitPrice() decimal.Decimal {
	if s.OverridePrice != nil && !s.OverridePrice.IsNegative() {
		return *s.OverridePrice
	}
	return s.Product.BasePrice
}

// BuildLineItems converts a selection into line items. Products without variants give a
// single flat item; colour/size products give one item per colour that has at least one
// positive size quantity, with zero sizes dropped. Repeated colours and sizes are summed
// before stock ceilings are checked.
func BuildLineItems(sel Selection) ([]LineItem, error) {
	price := sel.UnitPrice()

	if sel.Product.VariantType != VariantColorSize {
		if sel.Quantity < 0 {
			return nil, ErrNegativeQuantity
		}
		if sel.Quantity == 0 {
			return nil, ErrEmptySelection
		}
		if sel.Quantity > MaxQuantity {
			return nil, fmt.Errorf("%w: exceeds %d", ErrQuantityTooLarge, MaxQuantity)
		}
		return []LineItem{newLineItem(sel.Product, nil, sel.Quantity, price)}, nil
	}

	merged, err := mergeColors(sel.Colors)
	if err != nil {
		return nil, err
	}

	var items []LineItem
	for _, cs := range merged {
		var kept []SizeQuantity
		qty := 0
		for _, sq := range cs.Sizes {
			if sq.Quantity == 0 {
				continue
			}
			if err := checkStock(sel.Product, cs.Color, sq); err != nil {
				return nil, err
			}
			if qty, err = addQuantity(qty, sq.Quantity); err != nil {
				return nil, fmt.Errorf("%w: %s", err, cs.Color)
			}
			kept = append(kept, sq)
		}
		if qty == 0 {
			continue
		}
		va := []VariantAssignment{{Color: cs.Color, Sizes: kept}}
		items = append(items, newLineItem(sel.Product, va, qty, price))
	}

	if len(items) == 0 {
		return nil, ErrEmptySelection
	}
	return items, nil
}

// mergeColors folds repeated colours, and repeated sizes within a colour, into a single
// entry each (case-insensitive, first spelling wins) so ceilings apply to the summed quantity.
func mergeColors(colors []ColorSelection) ([]ColorSelection, error) {
	var out []ColorSelection
	for _, cs := range colors {
		color := strings.TrimSpace(cs.Color)
		ci := -1
		for i := range out {
			if strings.EqualFold(out[i].Color, color) {
				ci = i
				break
			}
		}
		if ci < 0 {
			out = append(out, ColorSelection{Color: color})
			ci = len(out) - 1
		}

		for _, sq := range cs.Sizes {
			if sq.Quantity < 0 {
				return nil, fmt.Errorf("%w: %s/%s", ErrNegativeQuantity, color, sq.Size)
			}
			size := strings.TrimSpace(sq.Size)
			si := -1
			for j := range out[ci].Sizes {
				if strings.EqualFold(out[ci].Sizes[j].Size, size) {
					si = j
					break
				}
			}
			if si < 0 {
				out[ci].Sizes = append(out[ci].Sizes, SizeQuantity{Size: size, Quantity: sq.Quantity})
				continue
			}
			sum, err := addQuantity(out[ci].Sizes[si].Quantity, sq.Quantity)
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s", err, color, size)
			}
			out[ci].Sizes[si].Quantity = sum
		}
	}
	return out, nil
}

// addQuantity sums two non-negative quantities, rejecting results past MaxQuantity.
func addQuantity(a, b int) (int, error) {
	if b > MaxQuantity-a {
		return 0, fmt.Errorf("%w: exceeds %d", ErrQuantityTooLarge, MaxQuantity)
	}
	return a + b, nil
}

func newLineItem(p Product, va []VariantAssignment, qty int, price decimal.Decimal) LineItem {
	return LineItem{
		ID:                 newLineID(),
		ProductID:          p.ID,
		ProductName:        p.Name,
		VariantAssignments: va,
		PerUnitPrice:       price,
		TotalQuantity:      qty,
		TotalPrice:         price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// checkStock enforces the product's declared ceilings. Products that declare no
// variants at all are not checked.
func checkStock(p Product, color string, sq SizeQuantity) error {
	if len(p.Variants) == 0 {
		return nil
	}
	for _, cv := range p.Variants {
		if !strings.EqualFold(cv.Color, color) {
			continue
		}
		for _, ss := range cv.Sizes {
			if !strings.EqualFold(ss.Size, sq.Size) {
				continue
			}
			if sq.Quantity > ss.Stock {
				return fmt.Errorf("%w: %s/%s available %d, requested %d",
					ErrInsufficientStock, color, sq.Size, ss.Stock, sq.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrUnknownVariant, color, sq.Size)
}
