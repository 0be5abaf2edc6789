// Package commands contains the mutating operations of the order lifecycle
// engine. All commands follow a consistent pattern: constructor validation,
// transaction management through a unit of work, persistence, and change
// notification after commit.
package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
)

// Handler-side dependency interfaces. The unit of work abstractions ensure
// per-order serialization of read-modify-write sequences; clock and id
// generation are injected for testability.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order mutations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// Clock supplies the current time for creation and history timestamps.
	Clock interface {
		Now() time.Time
	}

	// IDGenerator mints identifiers for newly placed orders.
	IDGenerator interface {
		NewID() kernel.UUID
	}

	// OrderPublisher fans an updated order out to the subscribers of that
	// order's channel. Publishing is best effort and happens only after the
	// mutation is committed; failures are never surfaced to the mutation.
	OrderPublisher interface {
		PublishOrderUpdated(orderID kernel.UUID, view views.OrderView)
	}
)
