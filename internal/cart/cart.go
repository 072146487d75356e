package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat sales tax applied to the cart subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.0875")

// Item is one cart line. Price is the unit price at the time the item was
// added; it is never re-fetched.
type Item struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	ImageURL            string          `json:"image_url,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// LineTotal is price times quantity for this line.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds the pre-submission selection. Lines keep insertion order, one
// line per item id, and never carry a zero or negative quantity. Mutations
// cannot fail.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges the item into the cart. An id already present has its quantity
// increased and keeps its original position; a new id appends. Quantities
// below one are treated as one.
func (c *Cart) Add(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove drops the line with the given id. Absent ids are a no-op.
func (c *Cart) Remove(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line. Absent ids are a no-op.
func (c *Cart) SetQuantity(id int64, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// SetInstructions replaces a line's special instructions. Absent ids are a
// no-op.
func (c *Cart) SetInstructions(id int64, instructions string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].SpecialInstructions = instructions
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns the lines in insertion order. The slice is a copy.
func (c *Cart) Items() []Item {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the exact sum of price times quantity over all lines. No
// rounding happens here; presentation rounds.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Tax is the subtotal times the given rate, unrounded.
func (c *Cart) Tax(rate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Mul(rate)
}

// Total is subtotal plus tax at the given rate, unrounded.
func (c *Cart) Total(rate decimal.Decimal) decimal.Decimal {
	subtotal := c.Subtotal()
	return subtotal.Add(subtotal.Mul(rate))
}

// MarshalJSON serializes the cart as its ordered line array.
func (c *Cart) MarshalJSON() ([]byte, error) {
	if c == nil || c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON restores the cart from an ordered line array, dropping any
// lines an older snapshot may have persisted with a non-positive quantity.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = nil
	for _, item := range items {
		if item.Quantity > 0 {
			c.items = append(c.items, item)
		}
	}
	return nil
}
