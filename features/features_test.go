package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"tienda-admin/orderbuilder"
	"tienda-admin/variants"
)

var draftCreatedAt = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

type storeTestContext struct {
	matrix   variants.Matrix
	products map[string]orderbuilder.Product
	draft    orderbuilder.Draft
	err      error
}

func (c *storeTestContext) reset() {
	c.matrix = variants.Matrix{}
	c.products = map[string]orderbuilder.Product{}
	c.draft = orderbuilder.NewDraft("draft-1", draftCreatedAt)
	c.err = nil
}

// matrix steps

func (c *storeTestContext) anEmptyMatrix() error {
	c.matrix = variants.Matrix{}
	return nil
}

func (c *storeTestContext) iAddTheGroupWithValues(name, values string) error {
	m, err := c.matrix.AddGroup(name)
	if err != nil {
		return err
	}
	for _, v := range splitList(values) {
		if m, err = m.AddValue(name, v); err != nil {
			return err
		}
	}
	c.matrix = m
	return nil
}

func (c *storeTestContext) iTryToAddTheGroup(name string) error {
	c.matrix, c.err = c.matrix.AddGroup(name)
	return nil
}

func (c *storeTestContext) iAddTheValueToTheGroup(value, group string) error {
	m, err := c.matrix.AddValue(group, value)
	if err != nil {
		return err
	}
	c.matrix = m
	return nil
}

func (c *storeTestContext) iTryToAddTheValueToTheGroup(value, group string) error {
	c.matrix, c.err = c.matrix.AddValue(group, value)
	return nil
}

func (c *storeTestContext) iRemoveTheValueFromTheGroup(value, group string) error {
	c.matrix = c.matrix.RemoveValue(group, value)
	return nil
}

func (c *storeTestContext) theStockOfIsSetTo(assignment string, qty int) error {
	m, err := c.matrix.SetStock(parseAssignment(assignment), qty)
	if err != nil {
		return err
	}
	c.matrix = m
	return nil
}

func (c *storeTestContext) iTryToSetTheStockOfTo(assignment string, qty int) error {
	c.matrix, c.err = c.matrix.SetStock(parseAssignment(assignment), qty)
	return nil
}

func (c *storeTestContext) theMatrixHasCombinations(n int) error {
	if got := len(c.matrix.Combinations); got != n {
		return fmt.Errorf("expected %d combinations, got %d", n, got)
	}
	return nil
}

func (c *storeTestContext) combinationIs(pos int, label string) error {
	if pos < 1 || pos > len(c.matrix.Combinations) {
		return fmt.Errorf("combination %d out of range (%d)", pos, len(c.matrix.Combinations))
	}
	got := c.matrix.Combinations[pos-1].Assignment.Label(c.matrix.Groups)
	if got != label {
		return fmt.Errorf("expected combination %d to be %q, got %q", pos, label, got)
	}
	return nil
}

func (c *storeTestContext) theStockOfIs(assignment string, qty int) error {
	combo, ok := c.matrix.Find(parseAssignment(assignment))
	if !ok {
		return fmt.Errorf("combination %q not found", assignment)
	}
	if combo.StockQuantity != qty {
		return fmt.Errorf("expected stock %d for %q, got %d", qty, assignment, combo.StockQuantity)
	}
	return nil
}

func (c *storeTestContext) theTotalStockIs(n int) error {
	if got := c.matrix.TotalStock(); got != n {
		return fmt.Errorf("expected total stock %d, got %d", n, got)
	}
	return nil
}

// order builder steps

func (c *storeTestContext) aProductPricedAtWithVariants(name, price string, table *godog.Table) error {
	p := orderbuilder.Product{
		ID:          strings.ToLower(name),
		Name:        name,
		BasePrice:   decimal.RequireFromString(price),
		VariantType: orderbuilder.VariantColorSize,
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // skip header
		}
		color, size := row.Cells[0].Value, row.Cells[1].Value
		stock, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return err
		}
		idx := -1
		for j := range p.Variants {
			if p.Variants[j].Color == color {
				idx = j
			}
		}
		if idx < 0 {
			p.Variants = append(p.Variants, orderbuilder.ColorVariant{Color: color})
			idx = len(p.Variants) - 1
		}
		p.Variants[idx].Sizes = append(p.Variants[idx].Sizes, orderbuilder.SizeStock{Size: size, Stock: stock})
	}
	c.products[name] = p
	return nil
}

func (c *storeTestContext) aProductPricedAtWithoutVariants(name, price string) error {
	c.products[name] = orderbuilder.Product{
		ID:          strings.ToLower(name),
		Name:        name,
		BasePrice:   decimal.RequireFromString(price),
		VariantType: orderbuilder.VariantNone,
	}
	return nil
}

func (c *storeTestContext) aNewDraft() error {
	c.draft = orderbuilder.NewDraft("draft-1", draftCreatedAt)
	return nil
}

func (c *storeTestContext) add(sel orderbuilder.Selection) error {
	next, _, err := c.draft.AddConfiguredProduct(sel)
	c.draft, c.err = next, err
	return nil
}

func (c *storeTestContext) sizeSelection(name string, table *godog.Table) (orderbuilder.Selection, error) {
	p, ok := c.products[name]
	if !ok {
		return orderbuilder.Selection{}, fmt.Errorf("unknown product %q", name)
	}
	sel := orderbuilder.Selection{Product: p}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		qty, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return orderbuilder.Selection{}, err
		}
		color := row.Cells[0].Value
		idx := -1
		for j := range sel.Colors {
			if sel.Colors[j].Color == color {
				idx = j
			}
		}
		if idx < 0 {
			sel.Colors = append(sel.Colors, orderbuilder.ColorSelection{Color: color})
			idx = len(sel.Colors) - 1
		}
		sel.Colors[idx].Sizes = append(sel.Colors[idx].Sizes, orderbuilder.SizeQuantity{Size: row.Cells[1].Value, Quantity: qty})
	}
	return sel, nil
}

func (c *storeTestContext) iAddWithSizes(name string, table *godog.Table) error {
	sel, err := c.sizeSelection(name, table)
	if err != nil {
		return err
	}
	c.add(sel)
	return c.err
}

func (c *storeTestContext) iTryToAddWithSizes(name string, table *godog.Table) error {
	sel, err := c.sizeSelection(name, table)
	if err != nil {
		return err
	}
	return c.add(sel)
}

func (c *storeTestContext) iAddOf(qty int, name string) error {
	c.add(orderbuilder.Selection{Product: c.products[name], Quantity: qty})
	return c.err
}

func (c *storeTestContext) iTryToAddOf(qty int, name string) error {
	return c.add(orderbuilder.Selection{Product: c.products[name], Quantity: qty})
}

func (c *storeTestContext) iAddOfAt(qty int, name, price string) error {
	override := decimal.RequireFromString(price)
	c.add(orderbuilder.Selection{Product: c.products[name], Quantity: qty, OverridePrice: &override})
	return c.err
}

func (c *storeTestContext) iSetTheDiscountToAndTheShippingTo(discount, shipping string) error {
	c.draft = c.draft.WithCharges(decimal.RequireFromString(discount), decimal.RequireFromString(shipping))
	return nil
}

func (c *storeTestContext) iRemoveTheFirstLineItem() error {
	if len(c.draft.Items) == 0 {
		return errors.New("draft has no line items")
	}
	c.draft = c.draft.RemoveLineItem(c.draft.Items[0].ID)
	return nil
}

func (c *storeTestContext) iValidateTheDraft() error {
	c.err = c.draft.Validate()
	return nil
}

func (c *storeTestContext) theDraftHasLineItems(n int) error {
	if got := len(c.draft.Items); got != n {
		return fmt.Errorf("expected %d line items, got %d", n, got)
	}
	return nil
}

func (c *storeTestContext) theSubtotalIs(amount string) error {
	return expectAmount("subtotal", amount, c.draft.Totals().Subtotal)
}

func (c *storeTestContext) theTotalIs(amount string) error {
	return expectAmount("total", amount, c.draft.Totals().Total)
}

func (c *storeTestContext) theTotalQuantityIs(n int) error {
	if got := c.draft.Totals().TotalQuantity; got != n {
		return fmt.Errorf("expected total quantity %d, got %d", n, got)
	}
	return nil
}

// shared

func (c *storeTestContext) theOperationFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected an error, got none")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func expectAmount(what, want string, got decimal.Decimal) error {
	if !decimal.RequireFromString(want).Equal(got) {
		return fmt.Errorf("expected %s %s, got %s", what, want, got.String())
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseAssignment reads "Color=Rojo, Talla=S"
func parseAssignment(s string) variants.Assignment {
	a := variants.Assignment{}
	for _, pair := range splitList(s) {
		k, v, _ := strings.Cut(pair, "=")
		a[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return a
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storeTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Variant matrix
	ctx.Step(`^an empty matrix$`, tc.anEmptyMatrix)
	ctx.Step(`^I add the group "([^"]*)" with values "([^"]*)"$`, tc.iAddTheGroupWithValues)
	ctx.Step(`^I try to add the group "([^"]*)"$`, tc.iTryToAddTheGroup)
	ctx.Step(`^I add the value "([^"]*)" to the group "([^"]*)"$`, tc.iAddTheValueToTheGroup)
	ctx.Step(`^I try to add the value "([^"]*)" to the group "([^"]*)"$`, tc.iTryToAddTheValueToTheGroup)
	ctx.Step(`^I remove the value "([^"]*)" from the group "([^"]*)"$`, tc.iRemoveTheValueFromTheGroup)
	ctx.Step(`^the stock of "([^"]*)" is set to (-?\d+)$`, tc.theStockOfIsSetTo)
	ctx.Step(`^I try to set the stock of "([^"]*)" to (-?\d+)$`, tc.iTryToSetTheStockOfTo)
	ctx.Step(`^the matrix has (\d+) combinations$`, tc.theMatrixHasCombinations)
	ctx.Step(`^combination (\d+) is "([^"]*)"$`, tc.combinationIs)
	ctx.Step(`^the stock of "([^"]*)" is (\d+)$`, tc.theStockOfIs)
	ctx.Step(`^the total stock is (\d+)$`, tc.theTotalStockIs)

	// Order builder
	ctx.Step(`^a product "([^"]*)" priced at "([^"]*)" with variants:$`, tc.aProductPricedAtWithVariants)
	ctx.Step(`^a product "([^"]*)" priced at "([^"]*)" without variants$`, tc.aProductPricedAtWithoutVariants)
	ctx.Step(`^a new draft$`, tc.aNewDraft)
	ctx.Step(`^I add "([^"]*)" with sizes:$`, tc.iAddWithSizes)
	ctx.Step(`^I try to add "([^"]*)" with sizes:$`, tc.iTryToAddWithSizes)
	ctx.Step(`^I add (\d+) of "([^"]*)"$`, tc.iAddOf)
	ctx.Step(`^I try to add (\d+) of "([^"]*)"$`, tc.iTryToAddOf)
	ctx.Step(`^I add (\d+) of "([^"]*)" at "([^"]*)"$`, tc.iAddOfAt)
	ctx.Step(`^I set the discount to "([^"]*)" and the shipping to "([^"]*)"$`, tc.iSetTheDiscountToAndTheShippingTo)
	ctx.Step(`^I remove the first line item$`, tc.iRemoveTheFirstLineItem)
	ctx.Step(`^I validate the draft$`, tc.iValidateTheDraft)
	ctx.Step(`^the draft has (\d+) line items$`, tc.theDraftHasLineItems)
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the total quantity is (\d+)$`, tc.theTotalQuantityIs)

	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"."},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
