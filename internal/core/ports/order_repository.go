package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the sole synchronization boundary: concurrent mutations of the
// same order id are serialized through GetForUpdate, while different ids
// proceed independently.
//
// Unknown ids surface as errs.ObjectNotFoundError; transient storage
// failures surface as errs.StoreUnavailableError and mean the operation was
// never applied.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction. This is the per-id serialization point
	// for read-modify-write status updates.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves all orders, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// Delete permanently removes an order.
	Delete(ctx context.Context, id kernel.UUID) error
}
