package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one cart line as sent when placing an order.
type OrderItemRequest struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

// Cart maps menu item IDs to quantities. The zero value is an empty cart.
type Cart struct {
	qty map[int64]int
}

// CartLine is a cart entry joined with its menu item.
type CartLine struct {
	Item     MenuItem
	Quantity int
}

// Subtotal returns price × quantity for the line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Add increments the quantity of a menu item by one.
func (c *Cart) Add(menuItemID int64) {
	if c.qty == nil {
		c.qty = make(map[int64]int)
	}
	c.qty[menuItemID]++
}

// Remove decrements the quantity of a menu item, dropping it at zero.
func (c *Cart) Remove(menuItemID int64) {
	if c.qty[menuItemID] <= 1 {
		delete(c.qty, menuItemID)
		return
	}
	c.qty[menuItemID]--
}

// Quantity returns how many of the item are in the cart.
func (c *Cart) Quantity(menuItemID int64) int {
	return c.qty[menuItemID]
}

// Len returns the number of distinct items in the cart.
func (c *Cart) Len() int {
	return len(c.qty)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.qty = nil
}

// Lines joins the cart against menu, in menu order.
// Entries whose item is not on the menu are skipped.
func (c *Cart) Lines(menu []MenuItem) []CartLine {
	var lines []CartLine
	for _, item := range menu {
		if q := c.qty[item.ID]; q > 0 {
			lines = append(lines, CartLine{Item: item, Quantity: q})
		}
	}
	return lines
}

// Total sums price × quantity over entries found on menu.
func (c *Cart) Total(menu []MenuItem) decimal.Decimal {
	total := decimal.Zero
	for id, q := range c.qty {
		item, ok := FindMenuItem(menu, id)
		if !ok {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(q))))
	}
	return total
}

// OrderItems returns the cart as order lines, sorted by menu item ID.
func (c *Cart) OrderItems() []OrderItemRequest {
	items := make([]OrderItemRequest, 0, len(c.qty))
	for id, q := range c.qty {
		items = append(items, OrderItemRequest{MenuItemID: id, Quantity: q})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MenuItemID < items[j].MenuItemID })
	return items
}
