package orderbuilder

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SubmissionPayload is the exact shape handed to the order store.
type SubmissionPayload struct {
	DraftID        string           `json:"draftId"`
	Recipient      Recipient        `json:"recipient"`
	Lines          []SubmissionLine `json:"lines"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	Discount       decimal.Decimal  `json:"discount"`
	DiscountRuleID string           `json:"discountRuleId,omitempty"`
	ShippingCharge decimal.Decimal  `json:"shippingCharge"`
	Total          decimal.Decimal  `json:"total"`
	TotalQuantity  int              `json:"totalQuantity"`
}

type SubmissionLine struct {
	ProductID     string           `json:"productId"`
	ProductName   string           `json:"productName"`
	PerUnitPrice  decimal.Decimal  `json:"perUnitPrice"`
	TotalQuantity int              `json:"totalQuantity"`
	TotalPrice    decimal.Decimal  `json:"totalPrice"`
	Units         []SubmissionUnit `json:"units"`
}

// SubmissionUnit is one colour/size cell. Color and Size are empty for products without variants.
type SubmissionUnit struct {
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	Quantity int    `json:"quantity"`
}

// Validate reports every missing required field at once.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Recipient.Name) == "" {
		missing = append(missing, "recipient.name")
	}
	if strings.TrimSpace(d.Recipient.StreetAddress) == "" {
		missing = append(missing, "recipient.streetAddress")
	}
	if len(d.Items) == 0 {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Payload validates the draft and builds the submission schema.
func (d Draft) Payload() (SubmissionPayload, error) {
	if err := d.Validate(); err != nil {
		return SubmissionPayload{}, err
	}

	agg := d.Totals()
	p := SubmissionPayload{
		DraftID: d.ID,
		Recipient: Recipient{
			Name:          strings.TrimSpace(d.Recipient.Name),
			Phone:         strings.TrimSpace(d.Recipient.Phone),
			StreetAddress: strings.TrimSpace(d.Recipient.StreetAddress),
			City:          strings.TrimSpace(d.Recipient.City),
			Notes:         strings.TrimSpace(d.Recipient.Notes),
		},
		Lines:          make([]SubmissionLine, 0, len(d.Items)),
		Subtotal:       agg.Subtotal,
		Discount:       agg.Discount,
		DiscountRuleID: d.DiscountRuleID,
		ShippingCharge: agg.ShippingCharge,
		Total:          agg.Total,
		TotalQuantity:  agg.TotalQuantity,
	}

	for _, it := range d.Items {
		line := SubmissionLine{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			PerUnitPrice:  it.PerUnitPrice,
			TotalQuantity: it.TotalQuantity,
			TotalPrice:    it.TotalPrice,
		}
		if len(it.VariantAssignments) == 0 {
			line.Units = []SubmissionUnit{{Quantity: it.TotalQuantity}}
		}
		for _, va := range it.VariantAssignments {
			for _, sq := range va.Sizes {
				line.Units = append(line.Units, SubmissionUnit{Color: va.Color, Size: sq.Size, Quantity: sq.Quantity})
			}
		}
		p.Lines = append(p.Lines, line)
	}
	return p, nil
}
