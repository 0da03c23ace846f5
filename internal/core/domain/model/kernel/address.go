package kernel

import (
	"errors"

	"marketplace/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when validating an Address that was
// not created through NewAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the delivery address snapshot captured at checkout. It is stored
// on the order and never re-read from a live address book, so later edits to
// the buyer's saved addresses cannot change where an order ships.
//
// Required fields: full name, address line 1, city, postal code, country.
// Line 2, state, and phone are optional.
type Address struct {
	fullName   string
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
	phone      string

	isConstructed bool
}

// NewAddress creates a validated address snapshot.
// All required-field violations are reported together via errors.Join.
func NewAddress(fullName, line1, line2, city, state, postalCode, country, phone string) (Address, error) {
	var violations []error
	if fullName == "" {
		violations = append(violations, errs.NewValueIsRequiredError("full name"))
	}
	if line1 == "" {
		violations = append(violations, errs.NewValueIsRequiredError("address line 1"))
	}
	if city == "" {
		violations = append(violations, errs.NewValueIsRequiredError("city"))
	}
	if postalCode == "" {
		violations = append(violations, errs.NewValueIsRequiredError("postal code"))
	}
	if country == "" {
		violations = append(violations, errs.NewValueIsRequiredError("country"))
	}
	if err := errors.Join(violations...); err != nil {
		return Address{}, err
	}

	return Address{
		fullName:      fullName,
		line1:         line1,
		line2:         line2,
		city:          city,
		state:         state,
		postalCode:    postalCode,
		country:       country,
		phone:         phone,
		isConstructed: true,
	}, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	if !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// FullName returns the recipient's full name.
func (a Address) FullName() string {
	return a.fullName
}

// Line1 returns the first address line.
func (a Address) Line1() string {
	return a.line1
}

// Line2 returns the optional second address line.
func (a Address) Line2() string {
	return a.line2
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// State returns the optional state or province.
func (a Address) State() string {
	return a.state
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country.
func (a Address) Country() string {
	return a.country
}

// Phone returns the optional contact phone number.
func (a Address) Phone() string {
	return a.phone
}
