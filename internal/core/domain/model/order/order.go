package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrStatusHistoryIsInconsistent is returned by RestoreOrder when the
	// stored history does not end with the order's current status.
	ErrStatusHistoryIsInconsistent = errors.New("status history must end with the order's current status")
)

// Order represents a placed customer order. It is the aggregate root that
// owns the status lifecycle and the append-only status history.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier
//   - Items are non-empty and immutable for the lifetime of the order
//   - Total amount is never negative
//   - Status is always a member of the fixed status set
//   - Status history is never empty and its last entry always matches the
//     current status; entries are never edited, removed or reordered
//   - UpdatedAt is refreshed inside the same step as every history append
//
// The total amount is taken verbatim from the caller and never recomputed
// from the items. That trust boundary belongs to the storefront checkout,
// which quotes prices before the order reaches this engine.
//
// The struct uses private fields to ensure encapsulation; mutate status only
// through SetStatus and Advance.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// items are the order lines, fixed at placement
	items []OrderItem

	// totalAmount is the caller-supplied order total
	totalAmount decimal.Decimal

	// customer holds the delivery contact details
	customer Customer

	// status is the current state in the order lifecycle
	status Status

	// statusHistory is the append-only audit trail of status changes
	statusHistory []StatusChange

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Received status with a single-entry status
// history stamped at the creation time. This is the only way to bring a new
// order into existence.
//
// Parameters:
//   - id: unique identifier assigned by the caller's id generator
//   - items: at least one validated order line
//   - totalAmount: non-negative order total, trusted as supplied
//   - customer: validated delivery contact details
//   - now: creation timestamp from the injected clock
func NewOrder(
	id kernel.UUID,
	items []OrderItem,
	totalAmount decimal.Decimal,
	customer Customer,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Received,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setTotalAmount(totalAmount),
		o.setCustomer(customer),
		o.setCreationTime(now),
	); err != nil {
		return nil, err
	}

	o.statusHistory = []StatusChange{{status: Received, timestamp: now}}
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. All stored fields are
// revalidated so a corrupted document cannot produce an aggregate that
// violates the invariants.
func RestoreOrder(
	id kernel.UUID,
	items []OrderItem,
	totalAmount decimal.Decimal,
	customer Customer,
	status Status,
	statusHistory []StatusChange,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setTotalAmount(totalAmount),
		o.setCustomer(customer),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if len(statusHistory) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	for _, change := range statusHistory {
		if err := change.Status().Validate(); err != nil {
			return nil, err
		}
	}
	if statusHistory[len(statusHistory)-1].Status() != status {
		return nil, ErrStatusHistoryIsInconsistent
	}
	if createdAt.IsZero() || updatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("order timestamps")
	}

	o.status = status
	o.statusHistory = append([]StatusChange(nil), statusHistory...)
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the order lines. Items are fixed at placement;
// the copy keeps callers from mutating the slice.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// TotalAmount returns the caller-supplied order total.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Customer returns the delivery contact details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusHistory returns a copy of the append-only status history, oldest
// entry first.
func (o *Order) StatusHistory() []StatusChange {
	return append([]StatusChange(nil), o.statusHistory...)
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// SetStatus moves the order to target and appends a history entry stamped
// with now, refreshing UpdatedAt in the same step.
//
// Any member of the fixed status set is accepted, including the current
// status and earlier statuses; a repeated status appends a duplicate history
// entry. Only values outside the fixed set are rejected. Use Advance for the
// strictly forward, one-step progression.
func (o *Order) SetStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if now.IsZero() {
		return errs.NewValueIsRequiredError("status change timestamp")
	}

	o.status = target
	o.statusHistory = append(o.statusHistory, StatusChange{status: target, timestamp: now})
	o.updatedAt = now
	return nil
}

// Advance moves the order one step forward along the canonical progression,
// appending a history entry and refreshing UpdatedAt. It reports false
// without modifying the order when the order is already Delivered.
func (o *Order) Advance(now time.Time) (bool, error) {
	next, ok := o.status.Next()
	if !ok {
		return false, nil
	}
	if err := o.SetStatus(next, now); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]OrderItem(nil), items...)
	return nil
}

func (o *Order) setTotalAmount(totalAmount decimal.Decimal) error {
	if totalAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setCreationTime(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("creation timestamp")
	}
	o.createdAt = now
	o.updatedAt = now
	return nil
}
