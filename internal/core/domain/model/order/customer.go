package order

import (
	"errors"
	"fmt"
	"regexp"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer was not
	// created through the NewCustomer factory method.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	// phonePattern accepts digits, +, -, spaces and parentheses.
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

// Customer holds the delivery contact details captured at order placement.
// The fields are immutable after creation; correcting an address means
// placing a new order.
type Customer struct {
	name    string
	address string
	phone   string

	guard guard.ConstructorGuard
}

// NewCustomer creates validated customer details.
// Name and address must be non-empty; phone must consist of digits,
// +, -, spaces and parentheses only.
func NewCustomer(name, address, phone string) (Customer, error) {
	customer := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setName(name),
		customer.setAddress(address),
		customer.setPhone(phone),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate ensures the customer was created through NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer's name.
func (c Customer) Name() string {
	return c.name
}

// Address returns the delivery address.
func (c Customer) Address() string {
	return c.address
}

// Phone returns the contact phone number.
func (c Customer) Phone() string {
	return c.phone
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	c.name = name
	return nil
}

func (c *Customer) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("customer address")
	}
	c.address = address
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause("customer phone", fmt.Errorf("%q does not match the phone pattern", phone))
	}
	c.phone = phone
	return nil
}
