package orderbuilder

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate is derived from a draft and never stored.
type Aggregate struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	ShippingCharge decimal.Decimal `json:"shippingCharge"`
	Total          decimal.Decimal `json:"total"`
	TotalQuantity  int             `json:"totalQuantity"`
}

type Recipient struct {
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Draft is an in-progress order. Every method returns a new Draft; the receiver is not modified.
type Draft struct {
	ID             string          `json:"id"`
	Items          []LineItem      `json:"items"`
	Discount       decimal.Decimal `json:"discount"`
	ShippingCharge decimal.Decimal `json:"shippingCharge"`
	Recipient      Recipient       `json:"recipient"`
	DiscountRuleID string          `json:"discountRuleId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func NewDraft(id string, now time.Time) Draft {
	return Draft{
		ID:             id,
		Items:          []LineItem{},
		Discount:       decimal.Zero,
		ShippingCharge: decimal.Zero,
		CreatedAt:      now,
	}
}

// AddConfiguredProduct appends the line items built from sel. Identical selections are
// appended again, not merged. On error the draft is returned as it was.
func (d Draft) AddConfiguredProduct(sel Selection) (Draft, []LineItem, error) {
	added, err := BuildLineItems(sel)
	if err != nil {
		return d, nil, err
	}
	out := d
	out.Items = make([]LineItem, 0, len(d.Items)+len(added))
	out.Items = append(out.Items, d.Items...)
	out.Items = append(out.Items, added...)
	return out, added, nil
}

// RemoveLineItem drops the item with the given ID. Unknown IDs leave the draft as is.
func (d Draft) RemoveLineItem(id string) Draft {
	for i, it := range d.Items {
		if it.ID != id {
			continue
		}
		out := d
		out.Items = make([]LineItem, 0, len(d.Items)-1)
		out.Items = append(out.Items, d.Items[:i]...)
		out.Items = append(out.Items, d.Items[i+1:]...)
		return out
	}
	return d
}

// WithCharges sets discount and shipping; negative inputs become 0. Setting charges by
// hand clears any auto-discount rule reference.
func (d Draft) WithCharges(discount, shipping decimal.Decimal) Draft {
	out := d
	out.Discount = floorZero(discount)
	out.ShippingCharge = floorZero(shipping)
	out.DiscountRuleID = ""
	return out
}

// WithDiscountRule records a discount coming from a pricing rule.
func (d Draft) WithDiscountRule(ruleID string, discount decimal.Decimal) Draft {
	out := d
	out.Discount = floorZero(discount)
	out.DiscountRuleID = ruleID
	return out
}

func (d Draft) WithRecipient(r Recipient) Draft {
	out := d
	out.Recipient = r
	return out
}

func (d Draft) Totals() Aggregate {
	return RecomputeTotals(d.Items, d.Discount, d.ShippingCharge)
}

// RecomputeTotals: total = subtotal - discount + shipping, never below 0.
func RecomputeTotals(items []LineItem, discount, shipping decimal.Decimal) Aggregate {
	subtotal := decimal.Zero
	qty := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.TotalPrice)
		qty += it.TotalQuantity
	}
	discount = floorZero(discount)
	shipping = floorZero(shipping)

	return Aggregate{
		Subtotal:       subtotal,
		Discount:       discount,
		ShippingCharge: shipping,
		Total:          floorZero(subtotal.Sub(discount).Add(shipping)),
		TotalQuantity:  qty,
	}
}

func floorZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
