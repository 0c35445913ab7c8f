package cart

import "github.com/JordaoGustavo/Whatsfood/internal/models"

// Line is a selected menu item plus the quantity of it currently in the cart.
// The item is a snapshot taken at first add; later catalog changes do not
// touch lines already in a cart.
type Line struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price * quantity for the line.
func (l Line) Subtotal() models.Money {
	return l.Item.Price.Mul(l.Quantity)
}

// Cart is an ordered, quantity-aggregated selection of menu items. Lines keep
// the order the items were first added; a line never holds quantity below 1.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add puts one unit of the item into the cart. An existing line for the same
// item ID is incremented in place (keeping its position and item snapshot);
// otherwise a new line with quantity 1 is appended.
func (c *Cart) Add(item models.MenuItem) {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Item: item, Quantity: 1})
}

// Remove takes one unit of the item out of the cart. A line at quantity 1 is
// deleted entirely. Removing an absent item ID is a no-op.
func (c *Cart) Remove(itemID string) {
	for i := range c.Lines {
		if c.Lines[i].Item.ID != itemID {
			continue
		}
		if c.Lines[i].Quantity > 1 {
			c.Lines[i].Quantity--
		} else {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		}
		return
	}
}

// Total computes the sum of price * quantity over all lines. It is computed
// freshly on every call; nothing is cached.
func (c *Cart) Total() models.Money {
	var total models.Money
	for _, line := range c.Lines {
		total += line.Subtotal()
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}
