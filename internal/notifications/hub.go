// Package notifications implements the in-process fan-out of order updates.
// Every persisted order change is pushed to the subscribers of that order's
// channel; subscribers on other channels never see it.
package notifications

import (
	"log/slog"
	"sync"

	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/kernel"
)

// defaultBufferSize bounds each subscriber's update queue. A subscriber that
// falls this far behind starts losing intermediate updates rather than
// blocking publishers.
const defaultBufferSize = 16

// Subscription is one listener on one order's update channel. Updates are
// delivered in publish order; Unsubscribe is idempotent and closes the
// channel so range loops terminate.
type Subscription struct {
	hub     *Hub
	orderID kernel.UUID
	updates chan views.OrderView
	once    sync.Once
}

// Updates returns the channel the subscriber receives order views on.
func (s *Subscription) Updates() <-chan views.OrderView {
	return s.updates
}

// Unsubscribe detaches the subscription from the hub and closes its channel.
// Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.updates)
	})
}

// Hub routes order update views to subscribers keyed by order id. Publishing
// never blocks: a subscriber with a full buffer misses that update and the
// drop is logged. Publish and Subscribe are safe for concurrent use.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[kernel.UUID]map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "notifications"),
		subscribers: make(map[kernel.UUID]map[*Subscription]struct{}),
	}
}

// Subscribe registers a listener for one order's updates. The subscription
// only sees updates published after it was registered.
func (h *Hub) Subscribe(orderID kernel.UUID) *Subscription {
	sub := &Subscription{
		hub:     h,
		orderID: orderID,
		updates: make(chan views.OrderView, defaultBufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	bucket, ok := h.subscribers[orderID]
	if !ok {
		bucket = make(map[*Subscription]struct{})
		h.subscribers[orderID] = bucket
	}
	bucket[sub] = struct{}{}

	return sub
}

// PublishOrderUpdated delivers the view to every current subscriber of the
// order's channel. Publishing to a channel nobody listens on is a no-op.
func (h *Hub) PublishOrderUpdated(orderID kernel.UUID, view views.OrderView) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[orderID] {
		select {
		case sub.updates <- view:
		default:
			h.logger.Warn("subscriber buffer full, dropping order update",
				"orderID", orderID.String(),
				"status", view.Status,
			)
		}
	}
}

// SubscriberCount reports the number of active subscriptions for an order.
func (h *Hub) SubscriberCount(orderID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[orderID])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	bucket, ok := h.subscribers[sub.orderID]
	if !ok {
		return
	}

	delete(bucket, sub)
	if len(bucket) == 0 {
		delete(h.subscribers, sub.orderID)
	}
}
