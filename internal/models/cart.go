package models

// CartLine is one menu item's quantity and computed subtotal within a cart.
// The unit price is captured when the line is first added and is not re-read
// from the catalog afterwards.
type CartLine struct {
	MenuItemID int64   `json:"menu_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Photo      string  `json:"photo"`
}

// Cart is a session-scoped ordered collection of cart lines awaiting
// checkout. It holds at most one line per menu item. A cart is a plain
// value owned by the caller's session; it performs no I/O.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add merges quantity into an existing line for the item, or appends a new
// line priced from the given catalog item. It returns the resulting number
// of lines.
func (c *Cart) Add(item MenuItem, quantity int) int {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == item.ID {
			c.Lines[i].Quantity += quantity
			c.Lines[i].Subtotal = float64(c.Lines[i].Quantity) * c.Lines[i].UnitPrice
			return len(c.Lines)
		}
	}

	c.Lines = append(c.Lines, CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   quantity,
		Subtotal:   item.Price * float64(quantity),
		Photo:      item.Photo,
	})
	return len(c.Lines)
}

// SetQuantity overwrites the quantity of the line for the item and recomputes
// its subtotal. A quantity of zero or less removes the line. If the cart has
// no line for the item this is a no-op.
func (c *Cart) SetQuantity(menuItemID int64, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID != menuItemID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
			c.Lines[i].Subtotal = float64(quantity) * c.Lines[i].UnitPrice
		}
		return
	}
}

// Remove deletes all lines for the item. Removing an absent item is a no-op.
func (c *Cart) Remove(menuItemID int64) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.MenuItemID != menuItemID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// Total returns the sum of all line subtotals. An empty cart totals zero.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Subtotal
	}
	return total
}

// Count returns the number of lines in the cart.
func (c *Cart) Count() int {
	return len(c.Lines)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}
