package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency describes how prices are displayed.
type Currency struct {
	Code   string
	Symbol string
	// lakh selects Indian digit grouping (12,34,567) instead of thousands.
	lakh bool
}

var (
	USD = Currency{Code: "USD", Symbol: "$"}
	INR = Currency{Code: "INR", Symbol: "₹", lakh: true}
)

// CurrencyFor picks INR when either the restaurant or the user is in India,
// USD otherwise.
func CurrencyFor(r Restaurant, user Identity) Currency {
	if r.InIndia() || user.CountryID == CountryIndia {
		return INR
	}
	return USD
}

// Format renders d with two decimals, grouping and symbol.
func (c Currency) Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + c.Symbol + c.group(whole) + "." + frac
}

func (c Currency) group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if c.lakh {
		size = 2
	}
	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}
