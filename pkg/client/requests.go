package client

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

// CreateRestaurantRequest is the payload for creating a restaurant.
type CreateRestaurantRequest struct {
	Name        string `json:"name"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CountryID   int64  `json:"countryId"`
}

// Validate checks the form before it is sent.
func (r CreateRestaurantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Cuisine, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Address, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 30)),
		validation.Field(&r.CountryID, validation.Required, validation.By(knownCountry)),
	)
}

// CreateMenuItemRequest is the payload for adding a menu item.
type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Validate checks the form before it is sent.
func (r CreateMenuItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.By(positivePrice)),
		validation.Field(&r.Category, validation.Required, validation.In(stringsToAny(domain.Categories)...)),
	)
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	RestaurantID  int64                     `json:"restaurantId"`
	Items         []domain.OrderItemRequest `json:"items"`
	PaymentMethod string                    `json:"paymentMethod"`
}

// Validate checks the order before it is sent.
func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RestaurantID, validation.Required),
		validation.Field(&r.Items, validation.Required, validation.By(positiveQuantities)),
		validation.Field(&r.PaymentMethod, validation.Required, validation.In(stringsToAny(domain.PaymentMethods)...)),
	)
}

func knownCountry(value interface{}) error {
	id, _ := value.(int64)
	if domain.CountryName(id) == "" {
		return errors.New("unknown country")
	}
	return nil
}

func positivePrice(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || !d.IsPositive() {
		return errors.New("must be greater than zero")
	}
	return nil
}

func positiveQuantities(value interface{}) error {
	items, _ := value.([]domain.OrderItemRequest)
	for _, it := range items {
		if it.MenuItemID == 0 || it.Quantity < 1 {
			return errors.New("every item needs a menu item and a quantity of at least 1")
		}
	}
	return nil
}

func stringsToAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
