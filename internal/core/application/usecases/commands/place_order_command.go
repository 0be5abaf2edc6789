package commands

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand represents a request to place a new order: the checkout
// cart lines, the caller-computed total, and the delivery contact details.
//
// The total amount is trusted as supplied and is deliberately not checked
// against the item prices; the storefront checkout owns that computation.
// Implementations wanting a stricter variant may recompute and compare, but
// the default trusting behavior is the compatibility contract.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	items       []order.OrderItem
	totalAmount decimal.Decimal
	customer    order.Customer

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that there is at least one properly constructed item, the total
// is not negative, and the customer details are properly constructed.
func NewPlaceOrderCommand(
	items []order.OrderItem,
	totalAmount decimal.Decimal,
	customer order.Customer,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItems(items),
		cmd.setTotalAmount(totalAmount),
		cmd.setCustomer(customer),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Items returns the order lines.
func (c PlaceOrderCommand) Items() []order.OrderItem {
	return append([]order.OrderItem(nil), c.items...)
}

// TotalAmount returns the caller-computed order total.
func (c PlaceOrderCommand) TotalAmount() decimal.Decimal {
	return c.totalAmount
}

// Customer returns the delivery contact details.
func (c PlaceOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c *PlaceOrderCommand) setItems(items []order.OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = append([]order.OrderItem(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setTotalAmount(totalAmount decimal.Decimal) error {
	if totalAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", totalAmount))
	}
	c.totalAmount = totalAmount
	return nil
}

func (c *PlaceOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}
