package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The canonical progression is:
//
//	Received ──> Preparing ──> OutForDelivery ──> Delivered
//
// Delivered is terminal. Automatic progression (Next) only ever moves one
// step forward along this chain. Direct status updates accept any member of
// the fixed set, including backward and self transitions; that asymmetry is
// intentional and mirrors the manual status-update path of the storefront,
// where staff may correct a mistakenly advanced order.
//
// Status is a value object that validates membership and provides the wire
// string representation used for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status assigned when an order is placed.
	Received

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// OutForDelivery indicates the order has left the restaurant.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	// This is the terminal state with no further transitions.
	Delivered
)

// getStatusStrings returns the wire strings for all Status values, including
// Unknown. The strings match the stored document format of the storefront.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Received:       "Order Received",
		Preparing:      "Preparing",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
	}
}

// getValidStatusStrings returns only the members of the fixed status set.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:       "Order Received",
		Preparing:      "Preparing",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
	}
}

// AllStatuses returns the fixed status set in lifecycle order.
func AllStatuses() []Status {
	return []Status{Received, Preparing, OutForDelivery, Delivered}
}

// ParseStatus converts a wire string back into a Status.
// Returns a validation error for any string outside the fixed set.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks membership in the fixed status set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no successor.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Next returns the status immediately following s in the canonical
// progression. The second return value is false when s is terminal
// (Delivered) or not a member of the fixed set.
func (s Status) Next() (Status, bool) {
	switch s {
	case Received:
		return Preparing, true
	case Preparing:
		return OutForDelivery, true
	case OutForDelivery:
		return Delivered, true
	default:
		return Unknown, false
	}
}
