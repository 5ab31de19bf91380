// Package cart accumulates line items in memory before they are committed.
package cart

import (
	"fmt"

	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/shopspring/decimal"
)

// Cart is not safe for concurrent use.
type Cart struct {
	kind  model.MovementKind
	items []model.LineItem
}

func New(kind model.MovementKind) (*Cart, error) {
	if !kind.Valid() {
		return nil, &model.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown movement kind %q", kind)}
	}
	return &Cart{kind: kind}, nil
}

func (c *Cart) Kind() model.MovementKind {
	return c.kind
}

// Add validates item for the cart's kind and appends a private copy of it.
func (c *Cart) Add(item model.LineItem) error {
	if err := item.ValidateFor(c.kind); err != nil {
		return err
	}
	c.items = append(c.items, detach(item))
	return nil
}

// Items returns a copy of the lines in the order they were added. Changing a
// returned line, its declared identity included, leaves the cart untouched.
func (c *Cart) Items() []model.LineItem {
	out := make([]model.LineItem, len(c.items))
	for i, item := range c.items {
		out[i] = detach(item)
	}
	return out
}

func detach(item model.LineItem) model.LineItem {
	if item.NewProduct != nil {
		id := *item.NewProduct
		item.NewProduct = &id
	}
	return item
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Total())
	}
	return total
}

func (c *Cart) Remove(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("cart line %d out of range", i)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func (c *Cart) Reset() {
	c.items = nil
}
