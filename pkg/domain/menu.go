package domain

import "github.com/shopspring/decimal"

// MenuItem is a dish offered by a restaurant.
type MenuItem struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	RestaurantID   int64           `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName,omitempty"`
	IsAvailable    bool            `json:"isAvailable"`
	ImageURL       string          `json:"imageUrl,omitempty"`
}

// Menu item categories.
const (
	CategoryAppetizer  = "APPETIZER"
	CategoryMainCourse = "MAIN_COURSE"
	CategoryDessert    = "DESSERT"
	CategoryBeverage   = "BEVERAGE"
)

// Categories lists menu categories in form order.
var Categories = []string{
	CategoryAppetizer,
	CategoryMainCourse,
	CategoryDessert,
	CategoryBeverage,
}

// ValidCategory returns true if the given category is known.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// FindMenuItem returns the item with the given ID from items.
func FindMenuItem(items []MenuItem, id int64) (MenuItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return MenuItem{}, false
}
