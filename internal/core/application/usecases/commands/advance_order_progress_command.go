package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrAdvanceOrderProgressCommandIsNotConstructed = errors.New(
		"AdvanceOrderProgressCommand must be created via NewAdvanceOrderProgressCommand constructor",
	)
)

// AdvanceOrderProgressCommand represents a request to move an order one step
// forward along the canonical progression. Unlike the direct status update,
// this path is strictly forward-only and stops at Delivered.
type AdvanceOrderProgressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderProgressCommand creates a command to advance an order.
func NewAdvanceOrderProgressCommand(orderID kernel.UUID) (AdvanceOrderProgressCommand, error) {
	cmd := AdvanceOrderProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AdvanceOrderProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderProgressCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderProgressCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c AdvanceOrderProgressCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AdvanceOrderProgressCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
