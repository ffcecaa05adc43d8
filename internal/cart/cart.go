// Package cart holds the in-memory order state a grocery conversation builds
// up before checkout.
package cart

import "github.com/voicelab-go/agent-days/internal/store"

// Line is one cart entry. Price, name and category are snapshotted from the
// catalog at add time; later catalog changes do not affect existing lines.
type Line struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// UpdateOutcome reports what Update did.
type UpdateOutcome int

const (
	UpdateSet UpdateOutcome = iota
	UpdateAdded
	UpdateRemoved
	UpdateNotInCart
)

// Cart is an ordered list of lines with at most one line per catalog item.
// Not safe for concurrent use; a session drives it from one goroutine.
type Cart struct {
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of item into the cart, merging with an existing
// line for the same item. quantity <= 0 is a no-op.
func (c *Cart) Add(item store.CatalogItem, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, Line{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
		Quantity: quantity,
	})
}

// Remove deletes the line for the given item id. Returns false when the item
// was not in the cart.
func (c *Cart) Remove(id int) bool {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Update sets the quantity for item. quantity <= 0 removes the line (or
// reports UpdateNotInCart if it did not exist); quantity > 0 sets the
// quantity, creating the line when absent.
func (c *Cart) Update(item store.CatalogItem, quantity int) UpdateOutcome {
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			if quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				return UpdateRemoved
			}
			c.lines[i].Quantity = quantity
			return UpdateSet
		}
	}
	if quantity <= 0 {
		return UpdateNotInCart
	}
	c.Add(item, quantity)
	return UpdateAdded
}

// Total is the sum of price times quantity over all lines, recomputed on
// every call.
func (c *Cart) Total() int {
	total := 0
	for _, line := range c.lines {
		total += line.Price * line.Quantity
	}
	return total
}

// Size returns the number of lines.
func (c *Cart) Size() int {
	return len(c.lines)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
