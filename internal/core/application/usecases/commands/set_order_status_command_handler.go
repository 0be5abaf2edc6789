package commands

import (
	"context"

	"orderdesk/internal/core/application/views"
)

// SetOrderStatusCommandHandler handles direct status updates. The status
// change and its history append happen atomically inside one transaction,
// serialized per order id by the repository's row lock.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	assembler  views.Assembler
	publisher  OrderPublisher
	clock      Clock
}

// NewSetOrderStatusCommandHandler creates a handler for status updates.
func NewSetOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	assembler views.Assembler,
	publisher OrderPublisher,
	clock Clock,
) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		assembler:  assembler,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle moves the order to the target status, appends the history entry,
// refreshes the update timestamp, and returns the updated order view.
// Subscribers are notified after the commit.
func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (views.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return views.OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return views.OrderView{}, err
	}

	if err = o.SetStatus(cmd.Target(), h.clock.Now()); err != nil {
		return views.OrderView{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return views.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.OrderView{}, err
	}

	view, err := h.assembler.Assemble(ctx, o)
	if err != nil {
		return views.OrderView{}, err
	}

	h.publisher.PublishOrderUpdated(o.ID(), view)
	return view, nil
}
