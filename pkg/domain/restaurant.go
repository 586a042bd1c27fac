package domain

import "strings"

// Restaurant is a venue listed by the backend.
type Restaurant struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CountryID   int64  `json:"countryId"`
	CountryName string `json:"countryName,omitempty"`
	IsActive    bool   `json:"isActive"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Country IDs known to the backend.
const (
	CountryIndia   int64 = 1
	CountryAmerica int64 = 2
)

// Country is a selectable country for restaurant creation.
type Country struct {
	ID   int64
	Name string
}

// Countries lists the countries the backend seeds, in form order.
var Countries = []Country{
	{ID: CountryIndia, Name: "India"},
	{ID: CountryAmerica, Name: "America"},
}

// CountryName returns the display name for a country ID, or "" if unknown.
func CountryName(id int64) string {
	for _, c := range Countries {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// InIndia reports whether the restaurant is located in India, by ID or by name.
func (r Restaurant) InIndia() bool {
	if r.CountryID == CountryIndia {
		return true
	}
	return strings.Contains(strings.ToLower(r.CountryName), "india")
}
