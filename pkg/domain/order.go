package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Cancellable returns true if the backend accepts a cancel for this status.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending
}

// Payment methods accepted by the backend.
const (
	PaymentCreditCard = "CREDIT_CARD"
	PaymentDebitCard  = "DEBIT_CARD"
	PaymentUPI        = "UPI"
	PaymentCash       = "CASH"
)

// PaymentMethods lists payment methods in selection order.
var PaymentMethods = []string{PaymentCreditCard, PaymentDebitCard, PaymentUPI, PaymentCash}

// ValidPaymentMethod returns true if m is a known payment method.
func ValidPaymentMethod(m string) bool {
	for _, known := range PaymentMethods {
		if known == m {
			return true
		}
	}
	return false
}

// NextPaymentMethod returns the method after m in PaymentMethods, wrapping around.
// Unknown values start the cycle from the first method.
func NextPaymentMethod(m string) string {
	for i, known := range PaymentMethods {
		if known == m {
			return PaymentMethods[(i+1)%len(PaymentMethods)]
		}
	}
	return PaymentMethods[0]
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID           int64           `json:"id"`
	MenuItemID   int64           `json:"menuItemId"`
	MenuItemName string          `json:"menuItemName"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// Order is a placed order as returned by the backend.
type Order struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userId"`
	Username       string          `json:"username"`
	RestaurantID   int64           `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	OrderItems     []OrderItem     `json:"orderItems"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         OrderStatus     `json:"status"`
	PaymentMethod  string          `json:"paymentMethod"`
	CreatedAt      Timestamp       `json:"createdAt"`
	UpdatedAt      Timestamp       `json:"updatedAt"`
}

// Timestamp decodes the backend's zone-less ISO-8601 local date-times
// as well as RFC 3339 values.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON accepts null, RFC 3339 and zone-less layouts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}
