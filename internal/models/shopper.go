package models

import (
	"errors"
	"strings"
)

// Checkout information errors, worded as the site shows them
var (
	ErrFirstNameRequired  = errors.New("Error: First Name is required")
	ErrLastNameRequired   = errors.New("Error: Last Name is required")
	ErrPostalCodeRequired = errors.New("Error: Postal Code is required")
)

// Shopper is the information collected on checkout step one
type Shopper struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// Validate returns the first missing field, in form order
func (s Shopper) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(s.LastName) == "" {
		return ErrLastNameRequired
	}
	if strings.TrimSpace(s.PostalCode) == "" {
		return ErrPostalCodeRequired
	}
	return nil
}
