package commands

import (
	"context"

	"orderdesk/internal/core/application/views"
)

// AdvanceOrderProgressResult reports the outcome of an advance request.
// Advanced is false when the order was already Delivered; the order view is
// returned unchanged in that case.
type AdvanceOrderProgressResult struct {
	Order    views.OrderView
	Advanced bool
}

// AdvanceOrderProgressCommandHandler handles one-step automatic progression.
// An already-delivered order is a reported no-op: nothing is persisted and
// no notification goes out.
type AdvanceOrderProgressCommandHandler struct {
	uowFactory OrderUoWFactory
	assembler  views.Assembler
	publisher  OrderPublisher
	clock      Clock
}

// NewAdvanceOrderProgressCommandHandler creates a handler for automatic progression.
func NewAdvanceOrderProgressCommandHandler(
	uowFactory OrderUoWFactory,
	assembler views.Assembler,
	publisher OrderPublisher,
	clock Clock,
) AdvanceOrderProgressCommandHandler {
	return AdvanceOrderProgressCommandHandler{
		uowFactory: uowFactory,
		assembler:  assembler,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle advances the order to its immediate successor status, or reports
// an already-terminal order without modifying it.
func (h *AdvanceOrderProgressCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderProgressCommand,
) (AdvanceOrderProgressResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrderProgressResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceOrderProgressResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceOrderProgressResult{}, err
	}

	advanced, err := o.Advance(h.clock.Now())
	if err != nil {
		return AdvanceOrderProgressResult{}, err
	}

	if !advanced {
		// Already Delivered: the deferred rollback releases the row lock.
		view, assembleErr := h.assembler.Assemble(ctx, o)
		if assembleErr != nil {
			return AdvanceOrderProgressResult{}, assembleErr
		}
		return AdvanceOrderProgressResult{Order: view, Advanced: false}, nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return AdvanceOrderProgressResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceOrderProgressResult{}, err
	}

	view, err := h.assembler.Assemble(ctx, o)
	if err != nil {
		return AdvanceOrderProgressResult{}, err
	}

	h.publisher.PublishOrderUpdated(o.ID(), view)
	return AdvanceOrderProgressResult{Order: view, Advanced: true}, nil
}
