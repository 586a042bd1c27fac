package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func testMenu() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "Samosa", Price: decimal.RequireFromString("2.50")},
		{ID: 2, Name: "Biryani", Price: decimal.RequireFromString("11.25")},
		{ID: 3, Name: "Lassi", Price: decimal.RequireFromString("3")},
	}
}

func TestCartAddRemove(t *testing.T) {
	var c Cart
	c.Add(1)
	c.Add(1)
	c.Add(2)

	if got := c.Quantity(1); got != 2 {
		t.Errorf("Quantity(1) = %d, want 2", got)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	c.Remove(1)
	if got := c.Quantity(1); got != 1 {
		t.Errorf("Quantity(1) after remove = %d, want 1", got)
	}
	c.Remove(1)
	if got := c.Len(); got != 1 {
		t.Errorf("Len() after removing last unit = %d, want 1", got)
	}

	// Removing something that is not there is a no-op.
	c.Remove(42)
	if got := c.Len(); got != 1 {
		t.Errorf("Len() after removing absent item = %d, want 1", got)
	}
}

func TestCartZeroValueRemove(t *testing.T) {
	var c Cart
	c.Remove(1) // must not panic
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCartTotal(t *testing.T) {
	var c Cart
	c.Add(1)
	c.Add(1)
	c.Add(2)
	c.Add(99) // not on the menu, ignored

	got := c.Total(testMenu())
	want := decimal.RequireFromString("16.25")
	if !got.Equal(want) {
		t.Errorf("Total() = %s, want %s", got, want)
	}
}

func TestCartLinesInMenuOrder(t *testing.T) {
	var c Cart
	c.Add(3)
	c.Add(1)
	c.Add(99)

	lines := c.Lines(testMenu())
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Item.Name != "Samosa" || lines[1].Item.Name != "Lassi" {
		t.Errorf("lines = %s, %s; want Samosa, Lassi", lines[0].Item.Name, lines[1].Item.Name)
	}
	if got := lines[1].Subtotal(); !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Lassi subtotal = %s, want 3", got)
	}
}

func TestCartOrderItems(t *testing.T) {
	var c Cart
	c.Add(2)
	c.Add(1)
	c.Add(2)

	items := c.OrderItems()
	want := []OrderItemRequest{{MenuItemID: 1, Quantity: 1}, {MenuItemID: 2, Quantity: 2}}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("items[%d] = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestMenuItemDecodesNumericPrice(t *testing.T) {
	var item MenuItem
	if err := json.Unmarshal([]byte(`{"id":7,"name":"Dosa","price":4.75}`), &item); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !item.Price.Equal(decimal.RequireFromString("4.75")) {
		t.Errorf("Price = %s, want 4.75", item.Price)
	}
}
