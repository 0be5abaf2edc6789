package order

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderItemIsNotConstructed is returned when an OrderItem was not
	// created through the NewOrderItem factory method.
	ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")
)

// OrderItem is a single line of an order: a menu item reference with a
// quantity and the unit price quoted to the customer at checkout time.
//
// OrderItem carries no menu item details beyond the identifier; name and
// current price are joined in at display time so catalog changes never
// require migrating stored orders.
//
// OrderItem is immutable after construction. There is no line-item mutation
// API anywhere in the system: the items of an order are fixed at placement.
type OrderItem struct {
	menuItemID kernel.UUID
	quantity   int
	unitPrice  decimal.Decimal

	guard guard.ConstructorGuard
}

// NewOrderItem creates a validated order line.
// Quantity must be at least 1 and unit price must not be negative.
func NewOrderItem(menuItemID kernel.UUID, quantity int, unitPrice decimal.Decimal) (OrderItem, error) {
	item := OrderItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewOrderItem.
func (i OrderItem) Validate() error {
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// MenuItemID returns the identifier of the referenced menu item.
func (i OrderItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the number of units ordered.
func (i OrderItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price quoted at checkout.
func (i OrderItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i *OrderItem) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
