package domain

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Identity is the client's decoded view of who is logged in.
// It is derived from the stored credential and never persisted on its own.
type Identity struct {
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	CountryID int64  `json:"country_id,omitempty"` // 0 when the credential carries none
}

// HasCountry returns true if the identity is scoped to a country.
func (i Identity) HasCountry() bool {
	return i.CountryID != 0
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&c.Password, validation.Required),
	)
}

// LoginResponse is what the backend returns from a successful login.
type LoginResponse struct {
	JWT string `json:"jwt"`
}
