// Package order provides the domain model for the order lifecycle engine.
// It implements the Order aggregate root with its fixed status lifecycle and
// append-only status history.
//
// The package includes:
//   - Order: The aggregate root that owns order identity, items, customer details and lifecycle
//   - Status: The fixed status set with the canonical forward progression
//   - OrderItem, Customer, StatusChange: Value objects carried by the aggregate
//
// Key business rules:
//   - Orders must have a valid identifier, at least one item and validated customer details
//   - The history always starts with the Received entry written at creation
//   - Every status change appends exactly one history entry and refreshes UpdatedAt
//   - Direct status updates accept any fixed-set member; automatic progression is
//     strictly one step forward and stops at Delivered
//   - The caller-supplied total amount is trusted verbatim, never recomputed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
