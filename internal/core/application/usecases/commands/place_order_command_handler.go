package commands

import (
	"context"

	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler handles order placement. It creates the order in
// Received status with its initial history entry, persists it, and notifies
// subscribers of the new order's channel.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	assembler  views.Assembler
	publisher  OrderPublisher
	clock      Clock
	ids        IDGenerator
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	assembler views.Assembler,
	publisher OrderPublisher,
	clock Clock,
	ids IDGenerator,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		assembler:  assembler,
		publisher:  publisher,
		clock:      clock,
		ids:        ids,
	}
}

// Handle processes the placement command and returns the placed order with
// its menu item details resolved. The notification is published only after
// the order is durably committed.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (views.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return views.OrderView{}, err
	}

	newOrder, err := order.NewOrder(h.ids.NewID(), cmd.Items(), cmd.TotalAmount(), cmd.Customer(), h.clock.Now())
	if err != nil {
		return views.OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return views.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return views.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.OrderView{}, err
	}

	view, err := h.assembler.Assemble(ctx, newOrder)
	if err != nil {
		return views.OrderView{}, err
	}

	h.publisher.PublishOrderUpdated(newOrder.ID(), view)
	return view, nil
}
